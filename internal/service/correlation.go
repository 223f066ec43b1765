package service

import (
	"fmt"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/pkg/stats"
	"github.com/healthdash/backend/pkg/utils"
)

// ComputeCorrelation returns Pearson's r between two metrics over the given
// summaries, rounded to four decimals. A zero-variance series yields r = 0
// with a computation_degenerate warning. Fewer than 50 states marks the
// result approximate.
func ComputeCorrelation(summaries []domain.StateSummary, a, b domain.MetricKind) (domain.CorrelationResult, []domain.Warning) {
	xs, ys := metricSeries(summaries, a), metricSeries(summaries, b)
	result := domain.CorrelationResult{MetricA: a, MetricB: b, N: len(summaries)}
	var warnings []domain.Warning

	r, ok := stats.Pearson(xs, ys)
	if !ok {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnComputationDegenerate,
			Message: fmt.Sprintf("correlation %s/%s over %d states has zero variance; r set to 0", a, b, len(summaries)),
		})
		r = 0
	}
	result.R = utils.RoundTo(r, 4)

	if len(summaries) < domain.StateCount {
		result.Approximate = true
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnApproximate,
			Message: fmt.Sprintf("correlation %s/%s computed over %d of %d states", a, b, len(summaries), domain.StateCount),
		})
	}
	return result, warnings
}

// CorrelationMatrix correlates every unordered pair of metrics, in canonical
// metric order, with both Pearson r and Spearman rho.
func CorrelationMatrix(summaries []domain.StateSummary) []domain.PairCorrelation {
	var matrix []domain.PairCorrelation
	for i, a := range domain.Metrics {
		for _, b := range domain.Metrics[i+1:] {
			xs, ys := metricSeries(summaries, a), metricSeries(summaries, b)
			r, _ := stats.Pearson(xs, ys)
			rho, _ := stats.Spearman(xs, ys)
			matrix = append(matrix, domain.PairCorrelation{
				MetricA: a,
				MetricB: b,
				R:       utils.RoundTo(r, 4),
				Rho:     utils.RoundTo(rho, 4),
			})
		}
	}
	return matrix
}

func metricSeries(summaries []domain.StateSummary, m domain.MetricKind) []float64 {
	out := make([]float64, len(summaries))
	for i, s := range summaries {
		out[i] = s.Value(m)
	}
	return out
}
