package service

import (
	"github.com/healthdash/backend/internal/artifact"
	"github.com/healthdash/backend/internal/domain"
)

// MetricView bundles everything the dashboard shows for one metric
type MetricView struct {
	Metric  domain.MetricKind   `json:"metric"`
	KPI     domain.KPI          `json:"kpi"`
	Trend   []domain.TrendPoint `json:"trend"`
	Stats   domain.TrendStats   `json:"trend_stats"`
	Ranking []domain.RankEntry  `json:"ranking"`
}

// DatasetService answers read-only queries over a loaded artifact. The
// dataset is never modified after construction.
type DatasetService struct {
	dataset *domain.AggregatedDataset
	byCode  map[string]int
}

// NewDatasetService wraps an already decoded dataset
func NewDatasetService(ds *domain.AggregatedDataset) *DatasetService {
	byCode := make(map[string]int, len(ds.States))
	for i, s := range ds.States {
		byCode[s.Code] = i
	}
	return &DatasetService{dataset: ds, byCode: byCode}
}

// LoadDataset reads the artifact at path once and wraps it
func LoadDataset(path string) (*DatasetService, error) {
	ds, err := artifact.Read(path)
	if err != nil {
		return nil, err
	}
	return NewDatasetService(ds), nil
}

// Dataset returns the whole artifact; callers must treat it as read-only
func (s *DatasetService) Dataset() *domain.AggregatedDataset {
	return s.dataset
}

// States returns a copy of every state summary
func (s *DatasetService) States() []domain.StateSummary {
	return append([]domain.StateSummary(nil), s.dataset.States...)
}

// State looks up one summary by code, case-insensitively
func (s *DatasetService) State(code string) (domain.StateSummary, bool) {
	i, ok := s.byCode[domain.CanonicalCode(code)]
	if !ok {
		return domain.StateSummary{}, false
	}
	return s.dataset.States[i], true
}

// Metric returns the KPI, trend and ranking for one metric
func (s *DatasetService) Metric(m domain.MetricKind) (MetricView, bool) {
	kpi, ok := s.dataset.KPIs[m]
	if !ok {
		return MetricView{}, false
	}
	return MetricView{
		Metric:  m,
		KPI:     kpi,
		Trend:   append([]domain.TrendPoint(nil), s.dataset.Trends[m]...),
		Stats:   s.dataset.Analysis.TrendStats[m],
		Ranking: append([]domain.RankEntry(nil), s.dataset.Analysis.Rankings[m]...),
	}, true
}

// Demographics returns the strata of one category in source order
func (s *DatasetService) Demographics(c domain.CategoryKind) ([]domain.DemographicRecord, bool) {
	rows, ok := s.dataset.Demographics[c]
	if !ok {
		return nil, false
	}
	return append([]domain.DemographicRecord(nil), rows...), true
}
