package service

import (
	"fmt"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/pkg/utils"
)

type latest struct {
	year  int
	value float64
	set   bool
}

type stateAccumulator struct {
	metrics    map[domain.MetricKind]latest
	popYear    int
	population int64
}

// BuildStateSummaries selects, for every canonical state, each metric's value
// at the maximum year present for that state and metric. Population comes
// from the state's latest year. The result holds exactly the 50 reference
// states in alphabetical order; a state or metric without data is a
// validation error.
func BuildStateSummaries(records []domain.RawRecord) ([]domain.StateSummary, error) {
	acc := make(map[string]*stateAccumulator, domain.StateCount)
	var issues []domain.Issue

	for _, rec := range records {
		if _, ok := domain.LookupState(rec.State.Code); !ok {
			issues = append(issues, domain.Issue{Ref: rec.Ref, Field: domain.ColStateCode, Value: rec.State.Code, Reason: "unrecognized state code"})
			continue
		}
		if !utils.InRange(rec.Value, 0, 100) {
			issues = append(issues, domain.Issue{Ref: rec.Ref, Field: domain.ColValue, Value: fmt.Sprint(rec.Value), Reason: "percentage outside [0,100]"})
			continue
		}

		code := domain.CanonicalCode(rec.State.Code)
		a := acc[code]
		if a == nil {
			a = &stateAccumulator{metrics: make(map[domain.MetricKind]latest, len(domain.Metrics))}
			acc[code] = a
		}

		cur := a.metrics[rec.Metric]
		if !cur.set || rec.Year >= cur.year {
			a.metrics[rec.Metric] = latest{year: rec.Year, value: rec.Value, set: true}
		}
		if rec.Year > a.popYear {
			a.popYear = rec.Year
			a.population = rec.Population
		}
	}

	summaries := make([]domain.StateSummary, 0, domain.StateCount)
	for _, state := range domain.States {
		a := acc[state.Code]
		if a == nil {
			issues = append(issues, domain.Issue{Ref: state.Code, Reason: fmt.Sprintf("no records for %s", state.Name)})
			continue
		}

		summary := domain.StateSummary{Name: state.Name, Code: state.Code, Population: a.population}
		complete := true
		for _, m := range domain.Metrics {
			l, ok := a.metrics[m]
			if !ok {
				issues = append(issues, domain.Issue{Ref: state.Code, Field: string(m), Reason: fmt.Sprintf("no %s records for %s", m, state.Name)})
				complete = false
				continue
			}
			summary.SetValue(m, l.value)
			if l.year > summary.Year {
				summary.Year = l.year
			}
		}
		if complete {
			summaries = append(summaries, summary)
		}
	}

	if err := domain.NewValidationError("state summaries", issues); err != nil {
		return nil, err
	}
	return summaries, nil
}
