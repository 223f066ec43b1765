package service

import (
	"fmt"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/pkg/utils"
)

type recordKey struct {
	code   string
	metric domain.MetricKind
	year   int
}

// Clean rounds every percentage to one decimal and collapses rows sharing
// (state, metric, year). The most recently listed row wins; the surviving
// row keeps the position of the first occurrence. Each replaced row yields
// a duplicate_record warning.
func Clean(records []domain.RawRecord) ([]domain.RawRecord, []domain.Warning) {
	out := make([]domain.RawRecord, 0, len(records))
	index := make(map[recordKey]int, len(records))
	var warnings []domain.Warning

	for _, rec := range records {
		rec.State.Code = domain.CanonicalCode(rec.State.Code)
		rec.Value = utils.Round1(rec.Value)

		key := recordKey{code: rec.State.Code, metric: rec.Metric, year: rec.Year}
		if i, dup := index[key]; dup {
			prev := out[i]
			warnings = append(warnings, domain.Warning{
				Kind:    domain.WarnDuplicateRecord,
				Ref:     rec.Ref,
				Message: fmt.Sprintf("replaces %s for %s/%s/%d (%.1f -> %.1f)",
					prev.Ref, key.code, key.metric, key.year, prev.Value, rec.Value),
			})
			out[i] = rec
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out, warnings
}

type demographicKey struct {
	category domain.CategoryKind
	label    string
	metric   domain.MetricKind
}

// CleanDemographics applies the same rounding and most-recent-wins rule to
// demographic rows keyed by (category, label, metric).
func CleanDemographics(records []domain.DemographicRecord) ([]domain.DemographicRecord, []domain.Warning) {
	out := make([]domain.DemographicRecord, 0, len(records))
	index := make(map[demographicKey]int, len(records))
	var warnings []domain.Warning

	for _, rec := range records {
		rec.Value = utils.Round1(rec.Value)

		key := demographicKey{category: rec.Category, label: rec.Label, metric: rec.Metric}
		if i, dup := index[key]; dup {
			prev := out[i]
			warnings = append(warnings, domain.Warning{
				Kind:    domain.WarnDuplicateRecord,
				Ref:     rec.Ref,
				Message: fmt.Sprintf("replaces %s for %s/%q/%s (%.1f -> %.1f)",
					prev.Ref, key.category, key.label, key.metric, prev.Value, rec.Value),
			})
			out[i] = rec
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out, warnings
}
