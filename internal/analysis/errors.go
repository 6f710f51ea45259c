// Package analysis implements the analytical engine over the Mega-Sena
// draw history: frequency rankings, prize geography aggregation,
// combination repeat detection and game suggestion. Every function is a
// pure computation over an immutable snapshot of draw records; nothing
// here performs I/O or mutates shared state, so concurrent use against
// the same inputs needs no coordination.
package analysis

import (
	"fmt"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

// InvalidRangeError reports a malformed ranking request.
type InvalidRangeError struct {
	K int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid ranking size %d: must be between 1 and %d", e.K, models.MaxNumber)
}

// UnknownStateError reports a geography query for a state with no recorded
// wins. Callers can distinguish "no data for this state" from a state that
// legitimately aggregates to zero.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("no recorded wins for state %q", e.State)
}

// InvalidCombinationError reports a candidate combination that is not
// exactly six distinct numbers in [1, 60].
type InvalidCombinationError struct {
	Numbers []int
	Reason  string
}

func (e *InvalidCombinationError) Error() string {
	return fmt.Sprintf("invalid combination %v: %s", e.Numbers, e.Reason)
}

// InsufficientPoolError reports a sampling pool too small to produce a
// six-number suggestion. It cannot occur on a full 60-number frequency
// table.
type InsufficientPoolError struct {
	Strategy models.Strategy
	PoolSize int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("strategy %q: sampling pool has %d numbers, need at least %d distinct", e.Strategy, e.PoolSize, models.NumbersPerDraw)
}
