package models

// MunicipalityCount is one row of a municipality prize ranking.
type MunicipalityCount struct {
	Municipality string `json:"municipality"`
	State        string `json:"state"`
	Wins         int    `json:"wins"`
}

// StateCount is one row of the per-state prize ranking.
type StateCount struct {
	State string `json:"state"`
	Wins  int    `json:"wins"`
}
