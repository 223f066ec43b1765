package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/pkg/utils"
)

// BuildTrends computes, per metric and year, the unweighted mean over all 50
// states. A year missing any state fails validation instead of averaging a
// partial set, and the years of each series must be contiguous.
func BuildTrends(records []domain.RawRecord) (map[domain.MetricKind][]domain.TrendPoint, error) {
	// metric -> year -> state code -> value
	grid := make(map[domain.MetricKind]map[int]map[string]float64, len(domain.Metrics))
	for _, rec := range records {
		years := grid[rec.Metric]
		if years == nil {
			years = make(map[int]map[string]float64)
			grid[rec.Metric] = years
		}
		states := years[rec.Year]
		if states == nil {
			states = make(map[string]float64, domain.StateCount)
			years[rec.Year] = states
		}
		states[domain.CanonicalCode(rec.State.Code)] = rec.Value
	}

	trends := make(map[domain.MetricKind][]domain.TrendPoint, len(domain.Metrics))
	var issues []domain.Issue

	for _, m := range domain.Metrics {
		years := grid[m]
		if len(years) == 0 {
			issues = append(issues, domain.Issue{Field: string(m), Reason: "no records for metric"})
			continue
		}

		ordered := make([]int, 0, len(years))
		for y := range years {
			ordered = append(ordered, y)
		}
		sort.Ints(ordered)

		series := make([]domain.TrendPoint, 0, len(ordered))
		for i, y := range ordered {
			if i > 0 && y != ordered[i-1]+1 {
				issues = append(issues, domain.Issue{
					Field:  string(m),
					Reason: fmt.Sprintf("years not contiguous: gap between %d and %d", ordered[i-1], y),
				})
			}

			values := years[y]
			if missing := missingStates(values); len(missing) > 0 {
				issues = append(issues, domain.Issue{
					Field:  string(m),
					Value:  fmt.Sprint(y),
					Reason: fmt.Sprintf("only %d of %d states reported; missing %s",
						domain.StateCount-len(missing), domain.StateCount, strings.Join(missing, ",")),
				})
				continue
			}

			sum := 0.0
			for _, state := range domain.States {
				sum += values[state.Code]
			}
			series = append(series, domain.TrendPoint{Year: y, Value: utils.Round1(sum / domain.StateCount)})
		}
		trends[m] = series
	}

	if err := domain.NewValidationError("trends", issues); err != nil {
		return nil, err
	}
	return trends, nil
}

// missingStates lists reference codes absent from values, in reference order
func missingStates(values map[string]float64) []string {
	var missing []string
	for _, state := range domain.States {
		if _, ok := values[state.Code]; !ok {
			missing = append(missing, state.Code)
		}
	}
	return missing
}
