package models

import (
	"fmt"
	"time"
)

// Bounds of the Mega-Sena number space.
const (
	MinNumber      = 1
	MaxNumber      = 60
	NumbersPerDraw = 6
)

// DrawRecord represents one historical Mega-Sena draw.
// Records are validated once at the ingestion boundary; the analysis
// layer treats them as already well formed.
type DrawRecord struct {
	ContestNumber int           `bson:"contestNumber" json:"contestNumber"`
	DrawDate      time.Time     `bson:"drawDate" json:"drawDate"`
	Numbers       []int         `bson:"numbers" json:"numbers"`
	Winners       []WinnerEntry `bson:"winners,omitempty" json:"winners,omitempty"`
}

// WinnerEntry represents a single Sena-winning ticket attributed to a
// location. Draws with multiple winning tickets in the same municipality
// carry one entry per ticket.
type WinnerEntry struct {
	Municipality string `bson:"municipality" json:"municipality"`
	State        string `bson:"state" json:"state"`
}

// Validate checks the structural invariants of a draw record. It is called
// by the ingestion layer before a record enters the history; downstream
// consumers rely on it having passed.
func (d *DrawRecord) Validate() error {
	if d.ContestNumber <= 0 {
		return fmt.Errorf("contest number must be positive, got %d", d.ContestNumber)
	}
	if d.DrawDate.IsZero() {
		return fmt.Errorf("contest %d: draw date is missing", d.ContestNumber)
	}
	if len(d.Numbers) != NumbersPerDraw {
		return fmt.Errorf("contest %d: expected %d numbers, got %d", d.ContestNumber, NumbersPerDraw, len(d.Numbers))
	}
	seen := make(map[int]bool, NumbersPerDraw)
	for _, n := range d.Numbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("contest %d: number %d out of range [%d, %d]", d.ContestNumber, n, MinNumber, MaxNumber)
		}
		if seen[n] {
			return fmt.Errorf("contest %d: duplicate number %d", d.ContestNumber, n)
		}
		seen[n] = true
	}
	for i, w := range d.Winners {
		if w.Municipality == "" {
			return fmt.Errorf("contest %d: winner %d has empty municipality", d.ContestNumber, i)
		}
		if w.State == "" {
			return fmt.Errorf("contest %d: winner %d has empty state", d.ContestNumber, i)
		}
	}
	return nil
}

// HistorySummary holds the headline figures of the analyzed history.
type HistorySummary struct {
	TotalDraws    int       `json:"totalDraws"`
	FirstDrawDate time.Time `json:"firstDrawDate"`
	LastDrawDate  time.Time `json:"lastDrawDate"`
}
