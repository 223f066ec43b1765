package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/pkg/stats"
	"github.com/healthdash/backend/pkg/utils"
)

// outlierFence is the Tukey multiplier applied to the interquartile range
const outlierFence = 1.5

// BuildAnalysis derives the secondary statistics published next to the KPIs.
// records are the cleaned yearly records behind summaries and trends.
func BuildAnalysis(
	records []domain.RawRecord,
	summaries []domain.StateSummary,
	trends map[domain.MetricKind][]domain.TrendPoint,
	demographics map[domain.CategoryKind][]domain.DemographicRecord,
) domain.Analysis {
	return domain.Analysis{
		Rankings:          Rankings(summaries),
		TrendStats:        TrendStatistics(trends),
		WeightedTrends:    WeightedTrends(records),
		CorrelationMatrix: CorrelationMatrix(summaries),
		Regression:        Regress(summaries, domain.MetricObesity, domain.MetricDiabetes),
		RiskClusters:      ClusterRisk(summaries),
		Variability:       Variability(records),
		Disparities:       Disparities(demographics),
	}
}

// Rankings orders all states per metric by value, highest first, ties by name
func Rankings(summaries []domain.StateSummary) map[domain.MetricKind][]domain.RankEntry {
	out := make(map[domain.MetricKind][]domain.RankEntry, len(domain.Metrics))
	for _, m := range domain.Metrics {
		ordered := append([]domain.StateSummary(nil), summaries...)
		sort.SliceStable(ordered, func(i, j int) bool {
			vi, vj := ordered[i].Value(m), ordered[j].Value(m)
			if vi != vj {
				return vi > vj
			}
			return ordered[i].Name < ordered[j].Name
		})

		entries := make([]domain.RankEntry, len(ordered))
		for i, s := range ordered {
			entries[i] = domain.RankEntry{Rank: i + 1, Code: s.Code, Value: s.Value(m)}
		}
		out[m] = entries
	}
	return out
}

// TrendStatistics summarizes each series: endpoints, absolute and relative
// change, least-squares slope in points per year, and year-over-year change.
func TrendStatistics(trends map[domain.MetricKind][]domain.TrendPoint) map[domain.MetricKind]domain.TrendStats {
	out := make(map[domain.MetricKind]domain.TrendStats, len(trends))
	for m, series := range trends {
		if len(series) == 0 {
			continue
		}
		first, last := series[0], series[len(series)-1]

		years := make([]float64, len(series))
		values := make([]float64, len(series))
		var yoy []domain.YearChange
		for i, p := range series {
			years[i] = float64(p.Year)
			values[i] = p.Value
			if i > 0 {
				yoy = append(yoy, domain.YearChange{
					Year:      p.Year,
					ChangePct: utils.RoundTo(utils.Percent(series[i-1].Value, p.Value), 2),
				})
			}
		}

		out[m] = domain.TrendStats{
			StartYear: first.Year,
			EndYear:   last.Year,
			Start:     first.Value,
			End:       last.Value,
			ChangePP:  utils.Round1(last.Value - first.Value),
			ChangePct: utils.RoundTo(utils.Percent(first.Value, last.Value), 2),
			Slope:     utils.RoundTo(stats.Slope(years, values), 3),
			YoY:       yoy,
		}
	}
	return out
}

// Disparities compares the highest and lowest stratum per category and
// metric. Ties keep the stratum listed first. Ratio is highest/lowest to two
// decimals, or 0 when the lowest value is 0.
func Disparities(demographics map[domain.CategoryKind][]domain.DemographicRecord) map[domain.CategoryKind][]domain.Disparity {
	out := make(map[domain.CategoryKind][]domain.Disparity, len(demographics))
	for cat, rows := range demographics {
		var order []domain.MetricKind
		byMetric := make(map[domain.MetricKind]*domain.Disparity)

		for _, rec := range rows {
			d := byMetric[rec.Metric]
			if d == nil {
				sv := domain.StratumValue{Label: rec.Label, Value: rec.Value}
				byMetric[rec.Metric] = &domain.Disparity{Metric: rec.Metric, Highest: sv, Lowest: sv}
				order = append(order, rec.Metric)
				continue
			}
			if rec.Value > d.Highest.Value {
				d.Highest = domain.StratumValue{Label: rec.Label, Value: rec.Value}
			}
			if rec.Value < d.Lowest.Value {
				d.Lowest = domain.StratumValue{Label: rec.Label, Value: rec.Value}
			}
		}

		list := make([]domain.Disparity, 0, len(order))
		for _, m := range order {
			d := byMetric[m]
			if d.Lowest.Value != 0 {
				d.Ratio = utils.RoundTo(d.Highest.Value/d.Lowest.Value, 2)
			}
			list = append(list, *d)
		}
		out[cat] = list
	}
	return out
}

// DetectOutliers flags latest-year state values outside the Tukey fences.
// Outliers are reported, never removed.
func DetectOutliers(summaries []domain.StateSummary) []domain.Warning {
	var warnings []domain.Warning
	for _, m := range domain.Metrics {
		values := metricSeries(summaries, m)
		lo, hi := stats.IQRBounds(values, outlierFence)
		for i, s := range summaries {
			if values[i] < lo || values[i] > hi {
				warnings = append(warnings, domain.Warning{
					Kind:    domain.WarnOutlier,
					Ref:     s.Code,
					Message: fmt.Sprintf("%s %.1f outside [%.2f, %.2f]", m, values[i], lo, hi),
				})
			}
		}
	}
	return warnings
}

// WeightedTrends is the population-weighted national value per metric and
// year: sum(value*population)/sum(population) over the states reporting it.
// It complements the unweighted series in trends.
func WeightedTrends(records []domain.RawRecord) map[domain.MetricKind][]domain.TrendPoint {
	type acc struct{ weighted, population float64 }
	grid := make(map[domain.MetricKind]map[int]*acc, len(domain.Metrics))
	for _, rec := range records {
		years := grid[rec.Metric]
		if years == nil {
			years = make(map[int]*acc)
			grid[rec.Metric] = years
		}
		a := years[rec.Year]
		if a == nil {
			a = &acc{}
			years[rec.Year] = a
		}
		a.weighted += rec.Value * float64(rec.Population)
		a.population += float64(rec.Population)
	}

	out := make(map[domain.MetricKind][]domain.TrendPoint, len(grid))
	for m, years := range grid {
		ordered := make([]int, 0, len(years))
		for y := range years {
			ordered = append(ordered, y)
		}
		sort.Ints(ordered)

		series := make([]domain.TrendPoint, 0, len(ordered))
		for _, y := range ordered {
			a := years[y]
			if a.population <= 0 {
				continue
			}
			series = append(series, domain.TrendPoint{Year: y, Value: utils.Round1(a.weighted / a.population)})
		}
		out[m] = series
	}
	return out
}

// Regress fits response = intercept + slope*predictor across states.
// A constant predictor yields slope 0, the mean response as intercept and
// an R² of 0.
func Regress(summaries []domain.StateSummary, predictor, response domain.MetricKind) domain.Regression {
	xs, ys := metricSeries(summaries, predictor), metricSeries(summaries, response)
	slope := stats.Slope(xs, ys)
	intercept := stats.Mean(ys) - slope*stats.Mean(xs)
	r, _ := stats.Pearson(xs, ys)

	return domain.Regression{
		Predictor: predictor,
		Response:  response,
		Intercept: utils.RoundTo(intercept, 3),
		Slope:     utils.RoundTo(slope, 3),
		RSquared:  utils.RoundTo(r*r, 4),
		N:         len(summaries),
	}
}

// ClusterRisk splits out the states strictly above the median of every
// metric (high risk) and strictly below it (low risk). Mixed profiles
// belong to neither list. Both lists follow reference state order.
func ClusterRisk(summaries []domain.StateSummary) domain.RiskClusters {
	medians := make(map[domain.MetricKind]float64, len(domain.Metrics))
	for _, m := range domain.Metrics {
		medians[m] = stats.Quantile(metricSeries(summaries, m), 0.5)
	}

	clusters := domain.RiskClusters{HighRisk: []string{}, LowRisk: []string{}}
	for _, s := range summaries {
		above, below := true, true
		for _, m := range domain.Metrics {
			v := s.Value(m)
			above = above && v > medians[m]
			below = below && v < medians[m]
		}
		switch {
		case above:
			clusters.HighRisk = append(clusters.HighRisk, s.Code)
		case below:
			clusters.LowRisk = append(clusters.LowRisk, s.Code)
		}
	}
	return clusters
}

// Variability summarizes each state's yearly values per metric: years
// observed, mean, min, max and sample standard deviation. States follow
// reference order.
func Variability(records []domain.RawRecord) map[domain.MetricKind][]domain.Spread {
	type point struct {
		year  int
		value float64
	}
	grid := make(map[domain.MetricKind]map[string][]point, len(domain.Metrics))
	for _, rec := range records {
		byState := grid[rec.Metric]
		if byState == nil {
			byState = make(map[string][]point, domain.StateCount)
			grid[rec.Metric] = byState
		}
		code := domain.CanonicalCode(rec.State.Code)
		byState[code] = append(byState[code], point{year: rec.Year, value: rec.Value})
	}

	out := make(map[domain.MetricKind][]domain.Spread, len(grid))
	for m, byState := range grid {
		var spreads []domain.Spread
		for _, state := range domain.States {
			points := byState[state.Code]
			if len(points) == 0 {
				continue
			}
			sort.Slice(points, func(i, j int) bool { return points[i].year < points[j].year })

			values := make([]float64, len(points))
			lo, hi := points[0].value, points[0].value
			for i, p := range points {
				values[i] = p.value
				lo = math.Min(lo, p.value)
				hi = math.Max(hi, p.value)
			}
			spreads = append(spreads, domain.Spread{
				Code:   state.Code,
				Years:  len(points),
				Mean:   utils.RoundTo(stats.Mean(values), 2),
				Min:    lo,
				Max:    hi,
				Stddev: utils.RoundTo(stats.SampleStddev(values), 2),
			})
		}
		out[m] = spreads
	}
	return out
}
