package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdash/backend/internal/domain"
)

func TestRankings(t *testing.T) {
	rankings := Rankings(fixtureSummaries())
	diabetes := rankings[domain.MetricDiabetes]
	require.Len(t, diabetes, domain.StateCount)

	assert.Equal(t, domain.RankEntry{Rank: 1, Code: "MS", Value: 14.2}, diabetes[0])
	assert.Equal(t, domain.RankEntry{Rank: domain.StateCount, Code: "CO", Value: 8.4}, diabetes[domain.StateCount-1])
	for i := 1; i < len(diabetes); i++ {
		assert.GreaterOrEqual(t, diabetes[i-1].Value, diabetes[i].Value)
	}
}

func TestTrendStatistics(t *testing.T) {
	trends := map[domain.MetricKind][]domain.TrendPoint{
		domain.MetricObesity: {{Year: 2022, Value: 30.0}, {Year: 2023, Value: 31.5}, {Year: 2024, Value: 33.0}},
	}
	stats := TrendStatistics(trends)[domain.MetricObesity]

	assert.Equal(t, 2022, stats.StartYear)
	assert.Equal(t, 2024, stats.EndYear)
	assert.Equal(t, 3.0, stats.ChangePP)
	assert.Equal(t, 10.0, stats.ChangePct)
	assert.Equal(t, 1.5, stats.Slope)
	require.Len(t, stats.YoY, 2)
	assert.Equal(t, domain.YearChange{Year: 2023, ChangePct: 5.0}, stats.YoY[0])
	assert.Equal(t, domain.YearChange{Year: 2024, ChangePct: 4.76}, stats.YoY[1])
}

func TestDisparities(t *testing.T) {
	disparities := Disparities(fixtureStrata(t))

	income := disparities[domain.CategoryIncome]
	require.Len(t, income, 2)
	assert.Equal(t, domain.MetricDiabetes, income[0].Metric)
	assert.Equal(t, domain.StratumValue{Label: "Less than $15,000", Value: 14.2}, income[0].Highest)
	assert.Equal(t, domain.StratumValue{Label: "$75,000 and above", Value: 8.1}, income[0].Lowest)
	assert.Equal(t, 1.75, income[0].Ratio)
}

func TestDisparitiesZeroLowest(t *testing.T) {
	d := Disparities(map[domain.CategoryKind][]domain.DemographicRecord{
		domain.CategoryAge: {
			{Label: "18-24", Metric: domain.MetricDiabetes, Value: 0},
			{Label: "65+", Metric: domain.MetricDiabetes, Value: 21.5},
		},
	})[domain.CategoryAge]
	require.Len(t, d, 1)
	assert.Equal(t, 0.0, d[0].Ratio)
}

func TestDetectOutliers(t *testing.T) {
	diabetes := make([]float64, domain.StateCount)
	obesity := make([]float64, domain.StateCount)
	for i := range diabetes {
		diabetes[i] = 10
		obesity[i] = 30
	}
	diabetes[44] = 30

	warnings := DetectOutliers(summariesWith(diabetes, obesity))
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnOutlier, warnings[0].Kind)
	assert.Equal(t, domain.States[44].Code, warnings[0].Ref)
}

func TestWeightedTrends(t *testing.T) {
	weighted := WeightedTrends([]domain.RawRecord{
		{State: domain.State{Code: "TX"}, Metric: domain.MetricDiabetes, Year: 2024, Value: 10, Population: 3},
		{State: domain.State{Code: "OK"}, Metric: domain.MetricDiabetes, Year: 2024, Value: 20, Population: 1},
		{State: domain.State{Code: "TX"}, Metric: domain.MetricDiabetes, Year: 2023, Value: 9, Population: 3},
	})

	series := weighted[domain.MetricDiabetes]
	require.Len(t, series, 2)
	assert.Equal(t, domain.TrendPoint{Year: 2023, Value: 9.0}, series[0])
	assert.Equal(t, domain.TrendPoint{Year: 2024, Value: 12.5}, series[1])

	fixture := WeightedTrends(fixtureRecords())
	assert.Len(t, fixture, len(domain.Metrics))
	assert.Len(t, fixture[domain.MetricObesity], domain.MaxYear-domain.MinYear+1)
}

func TestRegress(t *testing.T) {
	obesity := ramp(domain.StateCount, 25, 0.3)
	diabetes := make([]float64, len(obesity))
	for i, x := range obesity {
		diabetes[i] = 1.24 + 0.278*x
	}

	fit := Regress(summariesWith(diabetes, obesity), domain.MetricObesity, domain.MetricDiabetes)
	assert.Equal(t, domain.MetricObesity, fit.Predictor)
	assert.Equal(t, domain.MetricDiabetes, fit.Response)
	assert.Equal(t, 1.24, fit.Intercept)
	assert.Equal(t, 0.278, fit.Slope)
	assert.Equal(t, 1.0, fit.RSquared)
	assert.Equal(t, domain.StateCount, fit.N)
}

func TestRegressConstantPredictor(t *testing.T) {
	fit := Regress(summariesWith(ramp(4, 10, 1), constant(4, 8.4)), domain.MetricObesity, domain.MetricDiabetes)
	assert.Equal(t, 0.0, fit.Slope)
	assert.Equal(t, 11.5, fit.Intercept)
	assert.Equal(t, 0.0, fit.RSquared)
}

func TestClusterRisk(t *testing.T) {
	summaries := make([]domain.StateSummary, 6)
	for i := range summaries {
		s := domain.States[i]
		summaries[i] = domain.StateSummary{Name: s.Name, Code: s.Code}
		for _, m := range domain.Metrics {
			summaries[i].SetValue(m, float64(10+i))
		}
	}
	// Arizona is high on diabetes only
	summaries[2].SetValue(domain.MetricDiabetes, 40)

	clusters := ClusterRisk(summaries)
	assert.Equal(t, []string{"CA", "CO"}, clusters.HighRisk)
	assert.Equal(t, []string{"AL", "AK"}, clusters.LowRisk)

	empty := ClusterRisk(nil)
	assert.NotNil(t, empty.HighRisk)
	assert.Empty(t, empty.LowRisk)
}

func TestVariability(t *testing.T) {
	spreads := Variability(fixtureRecords())[domain.MetricDiabetes]
	require.Len(t, spreads, domain.StateCount)

	ms := spreads[23]
	assert.Equal(t, "MS", ms.Code)
	assert.Equal(t, 10, ms.Years)
	assert.Equal(t, 13.3, ms.Mean)
	assert.Equal(t, 12.4, ms.Min)
	assert.Equal(t, 14.2, ms.Max)
	assert.Equal(t, 0.61, ms.Stddev)
}
