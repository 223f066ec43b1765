package domain

// Survey years covered by the raw input
const (
	MinYear = 2015
	MaxYear = 2024
)

// Column names shared by every raw source
const (
	ColStateName  = "state_name"
	ColStateCode  = "state_code"
	ColMetric     = "metric"
	ColYear       = "year"
	ColValue      = "value"
	ColPopulation = "population"
	ColCategory   = "category"
	ColLabel      = "label"
)

// RecordColumns and DemographicColumns are the required fields per table
var (
	RecordColumns      = []string{ColStateName, ColStateCode, ColMetric, ColYear, ColValue, ColPopulation}
	DemographicColumns = []string{ColCategory, ColLabel, ColMetric, ColValue}
)

var columnAliases = map[string]string{
	"state":      ColStateName,
	"name":       ColStateName,
	"abbr":       ColStateCode,
	"code":       ColStateCode,
	"percentage": ColValue,
	"pct":        ColValue,
	"stratum":    ColLabel,
}

// CanonicalColumn normalizes a header and resolves known aliases
func CanonicalColumn(raw string) string {
	c := NormalizeColumn(raw)
	if alias, ok := columnAliases[c]; ok {
		return alias
	}
	return c
}

// RawRow is one untyped input row as read from a source. Ref locates the
// row for error reporting ("records.csv:12", "health_metric_raw#7").
// A field that is absent or blank counts as missing. Malformed is set by
// sources that could not map the row onto the header (ragged CSV line,
// nested JSON value) and makes the row fail validation.
type RawRow struct {
	Ref       string
	Fields    map[string]string
	Malformed string
}

// RawRecord is one state's observed value for one metric in one year
type RawRecord struct {
	Ref        string
	State      State
	Metric     MetricKind
	Year       int
	Value      float64
	Population int64
}

// DemographicRecord is one stratum's value for one metric
type DemographicRecord struct {
	Ref      string       `json:"-"`
	Category CategoryKind `json:"-"`
	Label    string       `json:"label"`
	Metric   MetricKind   `json:"metric"`
	Value    float64      `json:"value"`
}
