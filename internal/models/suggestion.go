package models

import "fmt"

// Strategy selects the sampling pool used to generate a suggestion.
type Strategy string

const (
	StrategyHot   Strategy = "hot"
	StrategyCold  Strategy = "cold"
	StrategyMixed Strategy = "mixed"
)

// ParseStrategy converts a request string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyHot, StrategyCold, StrategyMixed:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (expected hot, cold or mixed)", s)
	}
}

// Suggestion is a generated candidate play. Numbers are normalized
// ascending. HistoricalContests lists every past contest that drew this
// exact combination; empty means the combination has never been drawn.
type Suggestion struct {
	Numbers            []int    `json:"numbers"`
	Strategy           Strategy `json:"strategy"`
	HistoricalContests []int    `json:"historicalContests,omitempty"`
}

// PreviouslyDrawn reports whether the suggestion matches a past winning
// combination.
func (s *Suggestion) PreviouslyDrawn() bool {
	return len(s.HistoricalContests) > 0
}
