package domain

import (
	"fmt"
	"strings"
)

// MetricKind identifies a chronic-disease prevalence metric
type MetricKind string

const (
	MetricDiabetes     MetricKind = "diabetes"
	MetricObesity      MetricKind = "obesity"
	MetricHeartDisease MetricKind = "heart_disease"
	MetricInactivity   MetricKind = "inactivity"
)

// Metrics lists every metric in canonical output order
var Metrics = []MetricKind{
	MetricDiabetes,
	MetricObesity,
	MetricHeartDisease,
	MetricInactivity,
}

var metricAliases = map[string]MetricKind{
	"diabetes":            MetricDiabetes,
	"obesity":             MetricObesity,
	"heart_disease":       MetricHeartDisease,
	"heartdisease":        MetricHeartDisease,
	"inactivity":          MetricInactivity,
	"physical_inactivity": MetricInactivity,
}

// ParseMetric accepts the canonical spelling plus common variants
// ("heart-disease", "Heart Disease", "physical_inactivity").
func ParseMetric(raw string) (MetricKind, error) {
	if m, ok := metricAliases[normalizeToken(raw)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q", raw)
}

// Valid reports whether m is one of the canonical metrics
func (m MetricKind) Valid() bool {
	for _, k := range Metrics {
		if k == m {
			return true
		}
	}
	return false
}

// CategoryKind identifies a demographic stratification dimension
type CategoryKind string

const (
	CategoryAge    CategoryKind = "age_group"
	CategoryRace   CategoryKind = "race_ethnicity"
	CategoryIncome CategoryKind = "income_level"
)

// Categories lists every category in canonical output order
var Categories = []CategoryKind{
	CategoryAge,
	CategoryRace,
	CategoryIncome,
}

var categoryAliases = map[string]CategoryKind{
	"age_group":      CategoryAge,
	"age_groups":     CategoryAge,
	"age":            CategoryAge,
	"age_band":       CategoryAge,
	"race_ethnicity": CategoryRace,
	"race":           CategoryRace,
	"ethnicity":      CategoryRace,
	"income_level":   CategoryIncome,
	"income":         CategoryIncome,
	"income_bracket": CategoryIncome,
}

// ParseCategory accepts the canonical spelling plus common variants
// ("age-band", "race/ethnicity", "income bracket").
func ParseCategory(raw string) (CategoryKind, error) {
	if c, ok := categoryAliases[normalizeToken(raw)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown demographic category %q", raw)
}

// Valid reports whether c is one of the canonical categories
func (c CategoryKind) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// NormalizeColumn maps a header or key to its snake_case form
func NormalizeColumn(raw string) string {
	return normalizeToken(raw)
}

func normalizeToken(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_", "/", "_").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}
