package pricing

import "errors"

// ErrExhausted is returned by finite sources once all prices have been
// consumed. The session treats it as a clean end of the run.
var ErrExhausted = errors.New("price source exhausted")

// Source produces the next price given the current one. The simulator is
// infinite; replay sources return ErrExhausted when the recording ends.
type Source interface {
	Next(current float64) (float64, error)
}
