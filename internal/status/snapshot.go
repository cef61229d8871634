// internal/status/snapshot.go
package status

// Snapshot is the link health after the most recent cycle.
// It contains no logic and no memory of the past beyond counters.
type Snapshot struct {
	Health              uint16
	LastErrorCode       uint16
	Cycles              uint32
	Failures            uint32
	ConsecutiveFailures uint16
}
