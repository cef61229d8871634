// internal/status/encode.go
package status

// Encode converts a Snapshot into a full run status block.
// Layout is fixed; 32-bit counters are split high word first.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerRun)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotCyclesHi] = uint16(s.Cycles >> 16)
	regs[SlotCyclesLo] = uint16(s.Cycles)
	regs[SlotFailuresHi] = uint16(s.Failures >> 16)
	regs[SlotFailuresLo] = uint16(s.Failures)
	regs[SlotConsecutiveFailures] = s.ConsecutiveFailures

	return regs
}
