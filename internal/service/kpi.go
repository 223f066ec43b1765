package service

import (
	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/pkg/stats"
	"github.com/healthdash/backend/pkg/utils"
)

// ComputeKPIs derives, per metric, the national current value (unweighted
// mean across states, one decimal) and the highest and lowest state. Ties
// go to the alphabetically first state name.
func ComputeKPIs(summaries []domain.StateSummary) map[domain.MetricKind]domain.KPI {
	kpis := make(map[domain.MetricKind]domain.KPI, len(domain.Metrics))
	if len(summaries) == 0 {
		return kpis
	}

	for _, m := range domain.Metrics {
		values := metricSeries(summaries, m)
		hi, lo := 0, 0
		for i := 1; i < len(summaries); i++ {
			if beats(summaries[i], summaries[hi], values[i], values[hi], true) {
				hi = i
			}
			if beats(summaries[i], summaries[lo], values[i], values[lo], false) {
				lo = i
			}
		}
		kpis[m] = domain.KPI{
			Current: utils.Round1(stats.Mean(values)),
			Highest: stateValue(summaries[hi], values[hi]),
			Lowest:  stateValue(summaries[lo], values[lo]),
		}
	}
	return kpis
}

// beats reports whether candidate should replace best as the extreme
func beats(candidate, best domain.StateSummary, cv, bv float64, highest bool) bool {
	if cv == bv {
		return candidate.Name < best.Name
	}
	if highest {
		return cv > bv
	}
	return cv < bv
}

func stateValue(s domain.StateSummary, v float64) domain.StateValue {
	return domain.StateValue{State: s.Name, Code: s.Code, Value: v}
}
