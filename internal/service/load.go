package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/pkg/utils"
)

// ParseRecords turns untyped rows into validated RawRecords. Every row is
// checked completely; when any row fails, all issues are returned together
// as a *domain.ValidationError and no records are returned.
func ParseRecords(rows []domain.RawRow) ([]domain.RawRecord, error) {
	records := make([]domain.RawRecord, 0, len(rows))
	var issues []domain.Issue

	for _, row := range rows {
		rec, rowIssues := parseRecord(row)
		if len(rowIssues) > 0 {
			issues = append(issues, rowIssues...)
			continue
		}
		records = append(records, rec)
	}

	if err := domain.NewValidationError("load records", issues); err != nil {
		return nil, err
	}
	return records, nil
}

func parseRecord(row domain.RawRow) (domain.RawRecord, []domain.Issue) {
	v := rowValidator{row: row}
	v.malformed()
	v.required(domain.RecordColumns)

	rec := domain.RawRecord{Ref: row.Ref}

	if code, ok := v.field(domain.ColStateCode); ok {
		state, known := domain.LookupState(code)
		if !known {
			v.fail(domain.ColStateCode, code, "unrecognized state code")
		} else {
			rec.State = state
			if name, ok := v.field(domain.ColStateName); ok && !state.SameName(name) {
				v.fail(domain.ColStateName, name, fmt.Sprintf("does not match state code %s (%s)", state.Code, state.Name))
			}
		}
	}
	rec.Metric = v.metric()

	if raw, ok := v.field(domain.ColYear); ok {
		year, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			v.fail(domain.ColYear, raw, "not an integer year")
		case year < domain.MinYear || year > domain.MaxYear:
			v.fail(domain.ColYear, raw, fmt.Sprintf("outside %d-%d", domain.MinYear, domain.MaxYear))
		default:
			rec.Year = year
		}
	}

	rec.Value = v.percentage()

	if raw, ok := v.field(domain.ColPopulation); ok {
		pop, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case err != nil:
			v.fail(domain.ColPopulation, raw, "not an integer")
		case pop <= 0:
			v.fail(domain.ColPopulation, raw, "must be a positive integer")
		default:
			rec.Population = pop
		}
	}

	return rec, v.issues
}

// ParseDemographics turns untyped rows into validated DemographicRecords
// with the same all-or-nothing contract as ParseRecords.
func ParseDemographics(rows []domain.RawRow) ([]domain.DemographicRecord, error) {
	records := make([]domain.DemographicRecord, 0, len(rows))
	var issues []domain.Issue

	for _, row := range rows {
		v := rowValidator{row: row}
		v.malformed()
		v.required(domain.DemographicColumns)

		rec := domain.DemographicRecord{Ref: row.Ref}
		if raw, ok := v.field(domain.ColCategory); ok {
			cat, err := domain.ParseCategory(raw)
			if err != nil {
				v.fail(domain.ColCategory, raw, "unknown demographic category")
			}
			rec.Category = cat
		}
		if label, ok := v.field(domain.ColLabel); ok {
			rec.Label = strings.Join(strings.Fields(label), " ")
		}
		rec.Metric = v.metric()
		rec.Value = v.percentage()

		if len(v.issues) > 0 {
			issues = append(issues, v.issues...)
			continue
		}
		records = append(records, rec)
	}

	if err := domain.NewValidationError("load demographics", issues); err != nil {
		return nil, err
	}
	return records, nil
}

// mergeValidation combines the validation errors of several stages into one
// under stage. A single failure is returned unchanged; an error that is not
// a *domain.ValidationError wins outright.
func mergeValidation(stage string, errs ...error) error {
	var failed []*domain.ValidationError
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		failed = append(failed, verr)
	}

	switch len(failed) {
	case 0:
		return nil
	case 1:
		return failed[0]
	}
	var issues []domain.Issue
	for _, verr := range failed {
		issues = append(issues, verr.Issues...)
	}
	return domain.NewValidationError(stage, issues)
}

// rowValidator accumulates the issues of a single row
type rowValidator struct {
	row    domain.RawRow
	issues []domain.Issue
}

func (v *rowValidator) fail(field, value, reason string) {
	v.issues = append(v.issues, domain.Issue{Ref: v.row.Ref, Field: field, Value: value, Reason: reason})
}

func (v *rowValidator) malformed() {
	if v.row.Malformed != "" {
		v.fail("", "", v.row.Malformed)
	}
}

func (v *rowValidator) required(cols []string) {
	for _, col := range cols {
		if _, ok := v.field(col); !ok {
			v.fail(col, "", "missing required field")
		}
	}
}

// field returns the trimmed value; blank counts as absent
func (v *rowValidator) field(col string) (string, bool) {
	raw, ok := v.row.Fields[col]
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func (v *rowValidator) metric() domain.MetricKind {
	raw, ok := v.field(domain.ColMetric)
	if !ok {
		return ""
	}
	m, err := domain.ParseMetric(raw)
	if err != nil {
		v.fail(domain.ColMetric, raw, "unknown metric")
	}
	return m
}

func (v *rowValidator) percentage() float64 {
	raw, ok := v.field(domain.ColValue)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	switch {
	case err != nil || math.IsNaN(f) || math.IsInf(f, 0):
		v.fail(domain.ColValue, raw, "not a number")
	case !utils.InRange(f, 0, 100):
		v.fail(domain.ColValue, raw, "percentage outside [0,100]")
	default:
		return f
	}
	return 0
}
