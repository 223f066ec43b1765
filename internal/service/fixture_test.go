package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/internal/repository/memory"
)

// fixtureValue is the deterministic value of one state/metric/year. In
// 2024 Mississippi has the highest diabetes rate (14.2) and Colorado the
// lowest (8.4).
func fixtureValue(i int, code string, m domain.MetricKind, year int) float64 {
	back := float64(domain.MaxYear - year)
	switch m {
	case domain.MetricDiabetes:
		base := 10.0 + float64(i%10)*0.3
		switch code {
		case "MS":
			base = 14.2
		case "CO":
			base = 8.4
		}
		return base - back*0.2
	case domain.MetricObesity:
		return 30.0 + float64(i%7)*1.5 - back*0.5
	case domain.MetricHeartDisease:
		return 4.0 + float64(i%5)*0.4 - back*0.1
	default:
		return 25.0 + float64(i%9)*1.2 - back*0.4
	}
}

func fixturePopulation(i int) int64 {
	return int64(500000 + i*137000)
}

func recordRow(ref, name, code, metric string, year int, value string, population int64) domain.RawRow {
	return domain.RawRow{
		Ref: ref,
		Fields: map[string]string{
			domain.ColStateName:  name,
			domain.ColStateCode:  code,
			domain.ColMetric:     metric,
			domain.ColYear:       strconv.Itoa(year),
			domain.ColValue:      value,
			domain.ColPopulation: strconv.FormatInt(population, 10),
		},
	}
}

// fixtureRecordRows lists every state, metric and year, 2000 rows in total
func fixtureRecordRows() []domain.RawRow {
	var rows []domain.RawRow
	line := 2
	for year := domain.MinYear; year <= domain.MaxYear; year++ {
		for i, s := range domain.States {
			for _, m := range domain.Metrics {
				v := fixtureValue(i, s.Code, m, year)
				rows = append(rows, recordRow(
					fmt.Sprintf("records.csv:%d", line), s.Name, s.Code, string(m), year,
					strconv.FormatFloat(v, 'f', 1, 64), fixturePopulation(i)))
				line++
			}
		}
	}
	return rows
}

func demographicRow(ref, category, label, metric, value string) domain.RawRow {
	return domain.RawRow{
		Ref: ref,
		Fields: map[string]string{
			domain.ColCategory: category,
			domain.ColLabel:    label,
			domain.ColMetric:   metric,
			domain.ColValue:    value,
		},
	}
}

var incomeBrackets = []string{
	"Less than $15,000",
	"$15,000-$24,999",
	"$25,000-$49,999",
	"$50,000-$74,999",
	"$75,000 and above",
}

var ageBands = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

var raceGroups = []string{
	"Non-Hispanic White",
	"Non-Hispanic Black",
	"Hispanic",
	"Asian/Pacific Islander",
	"American Indian/Alaska Native",
}

func fixtureDemographicRows() []domain.RawRow {
	var rows []domain.RawRow
	n := 1
	add := func(category, label, metric string, value float64) {
		rows = append(rows, demographicRow(fmt.Sprintf("demographics.csv:%d", n+1), category, label, metric,
			strconv.FormatFloat(value, 'f', 1, 64)))
		n++
	}

	for i, band := range ageBands {
		add("age_group", band, "diabetes", 3.2+float64(i)*3.6)
	}
	for i, group := range raceGroups {
		add("race_ethnicity", group, "diabetes", 7.5+float64(i)*1.8)
	}
	diabetesByIncome := []float64{14.2, 12.6, 10.9, 9.4, 8.1}
	obesityByIncome := []float64{39.1, 37.2, 35.0, 33.3, 29.8}
	for i, bracket := range incomeBrackets {
		add("income_level", bracket, "diabetes", diabetesByIncome[i])
		add("income_level", bracket, "obesity", obesityByIncome[i])
	}
	return rows
}

func fixtureSource() *memory.Source {
	return memory.NewSource("fixture", fixtureRecordRows(), fixtureDemographicRows())
}

// fixtureRecords returns the parsed and cleaned fixture records
func fixtureRecords() []domain.RawRecord {
	records, err := ParseRecords(fixtureRecordRows())
	if err != nil {
		panic(err)
	}
	cleaned, _ := Clean(records)
	return cleaned
}

func fixtureSummaries() []domain.StateSummary {
	summaries, err := BuildStateSummaries(fixtureRecords())
	if err != nil {
		panic(err)
	}
	return summaries
}

// summariesWith builds n summaries whose diabetes and obesity values come
// from the given slices.
func summariesWith(diabetes, obesity []float64) []domain.StateSummary {
	out := make([]domain.StateSummary, len(diabetes))
	for i := range diabetes {
		s := domain.States[i]
		out[i] = domain.StateSummary{Name: s.Name, Code: s.Code, Year: domain.MaxYear, DiabetesPct: diabetes[i], ObesityPct: obesity[i]}
	}
	return out
}

var background = context.Background()
