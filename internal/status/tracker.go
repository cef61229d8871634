// internal/status/tracker.go
package status

import "errors"

// Tracker folds cycle outcomes into a Snapshot.
// Not safe for concurrent use; owned by the run loop.
type Tracker struct {
	snap Snapshot
}

// Observe records one cycle outcome and reports whether health changed.
func (t *Tracker) Observe(err error) bool {
	prev := t.snap.Health
	t.snap.Cycles++

	if err == nil {
		// Recovery / OK
		t.snap.Health = HealthOK
		t.snap.LastErrorCode = 0
		t.snap.ConsecutiveFailures = 0
		return prev != HealthOK
	}

	t.snap.Health = HealthError
	t.snap.Failures++
	t.snap.LastErrorCode = ErrorCode(err)

	// MUST NOT wrap
	if t.snap.ConsecutiveFailures < 65535 {
		t.snap.ConsecutiveFailures++
	}
	return prev != HealthError
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// ErrorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns CodeGeneric.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return CodeGeneric
}
