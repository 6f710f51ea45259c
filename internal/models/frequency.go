package models

// RankDirection selects which end of the frequency ranking is requested.
type RankDirection string

const (
	RankMost  RankDirection = "most"
	RankLeast RankDirection = "least"
)

// FrequencyTable is an immutable snapshot of per-number occurrence counts
// over the full draw history. Its domain is always exactly 1..60, so
// numbers that were never drawn appear with a zero count. The invariant
// sum(Counts) == NumbersPerDraw * TotalDraws holds by construction.
type FrequencyTable struct {
	Counts     map[int]int `json:"counts"`
	TotalDraws int         `json:"totalDraws"`
}

// NumberCount is one row of a frequency ranking.
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}
