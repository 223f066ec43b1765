package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdash/backend/internal/domain"
)

func TestBuildTrendsNationalAverage(t *testing.T) {
	trends, err := BuildTrends(fixtureRecords())
	require.NoError(t, err)
	require.Len(t, trends, len(domain.Metrics))

	diabetes := trends[domain.MetricDiabetes]
	require.Len(t, diabetes, domain.MaxYear-domain.MinYear+1)
	for i, p := range diabetes {
		assert.Equal(t, domain.MinYear+i, p.Year)
	}
	assert.Equal(t, 9.6, diabetes[0].Value)
	assert.Equal(t, 11.4, diabetes[len(diabetes)-1].Value)
}

func TestBuildTrendsRejectsMissingState(t *testing.T) {
	records := without(fixtureRecords(), func(r domain.RawRecord) bool {
		return r.State.Code == "WY" && r.Year == 2020 && r.Metric == domain.MetricDiabetes
	})

	trends, err := BuildTrends(records)
	assert.Nil(t, trends)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "trends", verr.Stage)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "2020", verr.Issues[0].Value)
	assert.Contains(t, verr.Issues[0].Reason, "only 49 of 50 states reported; missing WY")
}

func TestBuildTrendsRejectsGap(t *testing.T) {
	records := without(fixtureRecords(), func(r domain.RawRecord) bool {
		return r.Year == 2019 && r.Metric == domain.MetricObesity
	})

	_, err := BuildTrends(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gap between 2018 and 2020")
}
