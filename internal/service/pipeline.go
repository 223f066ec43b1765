package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/healthdash/backend/internal/domain"
)

// RunStats summarizes what one pipeline run consumed and produced
type RunStats struct {
	RunID           string
	Source          string
	RecordRows      int
	DemographicRows int
	Duplicates      int
	States          int
	FirstYear       int
	LastYear        int
}

// Result is the outcome of a successful run
type Result struct {
	Dataset  *domain.AggregatedDataset
	Warnings []domain.Warning
	Stats    RunStats
}

// Pipeline turns raw survey tables into the aggregated dataset. It holds no
// state between runs; Run may be called repeatedly on the same input and
// produces identical datasets.
type Pipeline struct {
	correlateA domain.MetricKind
	correlateB domain.MetricKind
}

// NewPipeline creates a pipeline whose headline correlation relates
// obesity to diabetes
func NewPipeline() *Pipeline {
	return &Pipeline{
		correlateA: domain.MetricObesity,
		correlateB: domain.MetricDiabetes,
	}
}

// Run executes every stage in order and stops at the first fatal error.
// Validation failures come back as *domain.ValidationError; source failures
// are wrapped with the source name.
func (p *Pipeline) Run(ctx context.Context, src RawSource) (Result, error) {
	runID := uuid.NewString()
	stats := RunStats{RunID: runID, Source: src.Name()}
	log.Printf("pipeline[%s]: reading %s", runID, src.Name())

	rawRecords, err := src.LoadRecords(ctx)
	if err != nil {
		return Result{Stats: stats}, fmt.Errorf("pipeline: failed to load records from %s: %w", src.Name(), err)
	}
	rawDemographics, err := src.LoadDemographics(ctx)
	if err != nil {
		return Result{Stats: stats}, fmt.Errorf("pipeline: failed to load demographics from %s: %w", src.Name(), err)
	}
	stats.RecordRows = len(rawRecords)
	stats.DemographicRows = len(rawDemographics)
	log.Printf("pipeline[%s]: loaded %d record rows, %d demographic rows", runID, stats.RecordRows, stats.DemographicRows)

	// both tables are validated before stopping so one run reports every bad row
	records, recordsErr := ParseRecords(rawRecords)
	demographics, demographicsErr := ParseDemographics(rawDemographics)
	if err := mergeValidation("load", recordsErr, demographicsErr); err != nil {
		return Result{Stats: stats}, err
	}

	records, warnings := Clean(records)
	demographics, demoWarnings := CleanDemographics(demographics)
	warnings = append(warnings, demoWarnings...)
	stats.Duplicates = len(warnings)

	summaries, err := BuildStateSummaries(records)
	if err != nil {
		return Result{Stats: stats}, err
	}
	trends, err := BuildTrends(records)
	if err != nil {
		return Result{Stats: stats}, err
	}
	stats.States = len(summaries)
	stats.FirstYear, stats.LastYear = yearRange(trends)

	correlation, corrWarnings := ComputeCorrelation(summaries, p.correlateA, p.correlateB)
	warnings = append(warnings, corrWarnings...)
	warnings = append(warnings, DetectOutliers(summaries)...)

	strata := Stratify(demographics)
	ds := &domain.AggregatedDataset{
		States:       summaries,
		Trends:       trends,
		Demographics: strata,
		Correlation:  correlation,
		KPIs:         ComputeKPIs(summaries),
		Analysis:     BuildAnalysis(records, summaries, trends, strata),
	}

	log.Printf("pipeline[%s]: aggregated %d states, years %d-%d, %d warning(s)",
		runID, stats.States, stats.FirstYear, stats.LastYear, len(warnings))
	return Result{Dataset: ds, Warnings: warnings, Stats: stats}, nil
}

func yearRange(trends map[domain.MetricKind][]domain.TrendPoint) (int, int) {
	first, last := 0, 0
	for _, m := range domain.Metrics {
		series := trends[m]
		if len(series) == 0 {
			continue
		}
		if first == 0 || series[0].Year < first {
			first = series[0].Year
		}
		if series[len(series)-1].Year > last {
			last = series[len(series)-1].Year
		}
	}
	return first, last
}
