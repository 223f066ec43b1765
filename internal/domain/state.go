package domain

import "strings"

// State is one entry of the fixed 50-state reference set
type State struct {
	Name string `json:"name"`
	Code string `json:"abbr"`
}

// States is the canonical reference set, ordered alphabetically by name.
// DC and territories are not part of it.
var States = []State{
	{"Alabama", "AL"}, {"Alaska", "AK"}, {"Arizona", "AZ"}, {"Arkansas", "AR"},
	{"California", "CA"}, {"Colorado", "CO"}, {"Connecticut", "CT"}, {"Delaware", "DE"},
	{"Florida", "FL"}, {"Georgia", "GA"}, {"Hawaii", "HI"}, {"Idaho", "ID"},
	{"Illinois", "IL"}, {"Indiana", "IN"}, {"Iowa", "IA"}, {"Kansas", "KS"},
	{"Kentucky", "KY"}, {"Louisiana", "LA"}, {"Maine", "ME"}, {"Maryland", "MD"},
	{"Massachusetts", "MA"}, {"Michigan", "MI"}, {"Minnesota", "MN"}, {"Mississippi", "MS"},
	{"Missouri", "MO"}, {"Montana", "MT"}, {"Nebraska", "NE"}, {"Nevada", "NV"},
	{"New Hampshire", "NH"}, {"New Jersey", "NJ"}, {"New Mexico", "NM"}, {"New York", "NY"},
	{"North Carolina", "NC"}, {"North Dakota", "ND"}, {"Ohio", "OH"}, {"Oklahoma", "OK"},
	{"Oregon", "OR"}, {"Pennsylvania", "PA"}, {"Rhode Island", "RI"}, {"South Carolina", "SC"},
	{"South Dakota", "SD"}, {"Tennessee", "TN"}, {"Texas", "TX"}, {"Utah", "UT"},
	{"Vermont", "VT"}, {"Virginia", "VA"}, {"Washington", "WA"}, {"West Virginia", "WV"},
	{"Wisconsin", "WI"}, {"Wyoming", "WY"},
}

// StateCount is the number of states every derived table must cover
const StateCount = 50

var statesByCode = func() map[string]State {
	m := make(map[string]State, len(States))
	for _, s := range States {
		m[s.Code] = s
	}
	return m
}()

// CanonicalCode trims and upper-cases a state code
func CanonicalCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// LookupState resolves a code (any case, surrounding spaces allowed)
// against the reference set.
func LookupState(code string) (State, bool) {
	s, ok := statesByCode[CanonicalCode(code)]
	return s, ok
}

// SameName compares a raw state name to the canonical one, ignoring case
// and repeated whitespace.
func (s State) SameName(raw string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(raw), " "), s.Name)
}
