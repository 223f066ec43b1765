package domain

// StateSummary combines a state's latest value for every metric
type StateSummary struct {
	Name            string  `json:"name"`
	Code            string  `json:"abbr"`
	Year            int     `json:"year"`
	DiabetesPct     float64 `json:"diabetes_pct"`
	ObesityPct      float64 `json:"obesity_pct"`
	HeartDiseasePct float64 `json:"heart_disease_pct"`
	InactivityPct   float64 `json:"inactivity_pct"`
	Population      int64   `json:"population"`
}

// Value returns the summary's figure for one metric
func (s StateSummary) Value(m MetricKind) float64 {
	switch m {
	case MetricDiabetes:
		return s.DiabetesPct
	case MetricObesity:
		return s.ObesityPct
	case MetricHeartDisease:
		return s.HeartDiseasePct
	case MetricInactivity:
		return s.InactivityPct
	}
	return 0
}

// SetValue stores the figure for one metric
func (s *StateSummary) SetValue(m MetricKind, v float64) {
	switch m {
	case MetricDiabetes:
		s.DiabetesPct = v
	case MetricObesity:
		s.ObesityPct = v
	case MetricHeartDisease:
		s.HeartDiseasePct = v
	case MetricInactivity:
		s.InactivityPct = v
	}
}

// TrendPoint is one national average in a TrendSeries
type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// CorrelationResult relates two metrics across the state summaries
type CorrelationResult struct {
	MetricA     MetricKind `json:"metricA"`
	MetricB     MetricKind `json:"metricB"`
	R           float64    `json:"r"`
	N           int        `json:"n"`
	Approximate bool       `json:"approximate"`
}

// StateValue names a state together with one of its figures
type StateValue struct {
	State string  `json:"state"`
	Code  string  `json:"abbr"`
	Value float64 `json:"value"`
}

// KPI holds the headline figures for one metric
type KPI struct {
	Current float64    `json:"current"`
	Highest StateValue `json:"highest"`
	Lowest  StateValue `json:"lowest"`
}

// RankEntry is one position in a metric ranking
type RankEntry struct {
	Rank  int     `json:"rank"`
	Code  string  `json:"abbr"`
	Value float64 `json:"value"`
}

// YearChange is the percent change of a national average vs the prior year
type YearChange struct {
	Year      int     `json:"year"`
	ChangePct float64 `json:"change_pct"`
}

// TrendStats describes a TrendSeries from first to last year
type TrendStats struct {
	StartYear int          `json:"start_year"`
	EndYear   int          `json:"end_year"`
	Start     float64      `json:"start"`
	End       float64      `json:"end"`
	ChangePP  float64      `json:"change_pp"`
	ChangePct float64      `json:"change_pct"`
	Slope     float64      `json:"slope"`
	YoY       []YearChange `json:"yoy"`
}

// PairCorrelation is one cell of the metric correlation matrix
type PairCorrelation struct {
	MetricA MetricKind `json:"metricA"`
	MetricB MetricKind `json:"metricB"`
	R       float64    `json:"r"`
	Rho     float64    `json:"rho"`
}

// StratumValue names a stratum together with its figure
type StratumValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Disparity compares the highest and lowest strata of one category/metric
type Disparity struct {
	Metric  MetricKind   `json:"metric"`
	Highest StratumValue `json:"highest"`
	Lowest  StratumValue `json:"lowest"`
	Ratio   float64      `json:"ratio"`
}

// Regression is the least-squares line Response = Intercept + Slope*Predictor
type Regression struct {
	Predictor MetricKind `json:"predictor"`
	Response  MetricKind `json:"response"`
	Intercept float64    `json:"intercept"`
	Slope     float64    `json:"slope"`
	RSquared  float64    `json:"r_squared"`
	N         int        `json:"n"`
}

// RiskClusters lists state codes above, or below, the national median on
// every metric
type RiskClusters struct {
	HighRisk []string `json:"high_risk"`
	LowRisk  []string `json:"low_risk"`
}

// Spread summarizes one state's values of a metric across survey years
type Spread struct {
	Code   string  `json:"abbr"`
	Years  int     `json:"years"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Stddev float64 `json:"stddev"`
}

// Analysis carries the secondary statistics shown alongside the KPIs
type Analysis struct {
	Rankings          map[MetricKind][]RankEntry   `json:"rankings"`
	TrendStats        map[MetricKind]TrendStats    `json:"trend_stats"`
	WeightedTrends    map[MetricKind][]TrendPoint  `json:"weighted_trends"`
	CorrelationMatrix []PairCorrelation            `json:"correlation_matrix"`
	Regression        Regression                   `json:"regression"`
	RiskClusters      RiskClusters                 `json:"risk_clusters"`
	Variability       map[MetricKind][]Spread      `json:"variability"`
	Disparities       map[CategoryKind][]Disparity `json:"disparities"`
}

// AggregatedDataset is the artifact consumed by the dashboard
type AggregatedDataset struct {
	States       []StateSummary                       `json:"states"`
	Trends       map[MetricKind][]TrendPoint          `json:"trends"`
	Demographics map[CategoryKind][]DemographicRecord `json:"demographics"`
	Correlation  CorrelationResult                    `json:"correlation"`
	KPIs         map[MetricKind]KPI                   `json:"kpis"`
	Analysis     Analysis                             `json:"analysis"`
}
