package service

import (
	"github.com/healthdash/backend/internal/domain"
)

// Stratify groups demographic rows by category, then by metric in order of
// first appearance. Stratum labels keep their source order (age bands stay
// ascending, income brackets stay as listed); nothing is sorted.
func Stratify(records []domain.DemographicRecord) map[domain.CategoryKind][]domain.DemographicRecord {
	type group struct {
		metrics []domain.MetricKind
		rows    map[domain.MetricKind][]domain.DemographicRecord
	}
	groups := make(map[domain.CategoryKind]*group, len(domain.Categories))

	for _, rec := range records {
		g := groups[rec.Category]
		if g == nil {
			g = &group{rows: make(map[domain.MetricKind][]domain.DemographicRecord)}
			groups[rec.Category] = g
		}
		if _, seen := g.rows[rec.Metric]; !seen {
			g.metrics = append(g.metrics, rec.Metric)
		}
		g.rows[rec.Metric] = append(g.rows[rec.Metric], rec)
	}

	out := make(map[domain.CategoryKind][]domain.DemographicRecord, len(groups))
	for cat, g := range groups {
		var rows []domain.DemographicRecord
		for _, m := range g.metrics {
			rows = append(rows, g.rows[m]...)
		}
		out[cat] = rows
	}
	return out
}
