// internal/status/constants.go
package status

// Run status block layout constants.
// These values define the report format and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerRun is the fixed number of 16-bit slots in a run status block.
const SlotsPerRun = 8

// ---- SLOT INDICES ----

// SlotHealthCode holds the link health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last raw error code.
const SlotLastErrorCode = 1

// SlotCyclesHi and SlotCyclesLo hold the completed cycle count, high word first.
const SlotCyclesHi = 2
const SlotCyclesLo = 3

// SlotFailuresHi and SlotFailuresLo hold the failed cycle count, high word first.
const SlotFailuresHi = 4
const SlotFailuresLo = 5

// SlotConsecutiveFailures holds the current failure streak.
const SlotConsecutiveFailures = 6

// Slot 7 is reserved.
const SlotReserved = 7

// ---- HEALTH CODES ----

// HealthUnknown represents a run that has not completed a cycle yet.
const HealthUnknown uint16 = 0

// HealthOK represents a link whose last cycle succeeded.
const HealthOK uint16 = 1

// HealthError represents a link whose last cycle failed.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// CodeGeneric is used when a failure carries no code of its own.
const CodeGeneric uint16 = 1

// HealthName returns a short label for a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthUnknown:
		return "unknown"
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	default:
		return "invalid"
	}
}
