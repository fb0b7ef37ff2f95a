package interp

import "sync/atomic"

// CancellationToken is a cooperative cancellation flag checked between
// statements and on every loop iteration ("Suspension points").
// A host running a script on a deadline calls Cancel from another
// goroutine; the interpreter itself remains single-threaded and never
// mutates the token except via the atomic.
type CancellationToken struct {
	cancelled atomic.Bool
}

// NewCancellationToken returns a token in the not-cancelled state.
func NewCancellationToken() *CancellationToken { return &CancellationToken{} }

// Cancel marks the token cancelled. Safe to call from any goroutine.
func (t *CancellationToken) Cancel() { t.cancelled.Store(true) }

// IsCancelled reports the current state.
func (t *CancellationToken) IsCancelled() bool { return t.cancelled.Load() }
