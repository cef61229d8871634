// internal/transfer/wait.go
package transfer

import "time"

// Waiter blocks for the settling interval.
// The protocol has no ready signal; this wait is the only synchronization.
type Waiter interface {
	Wait(d time.Duration)
}

// WaiterFunc adapts a function to Waiter.
type WaiterFunc func(d time.Duration)

func (f WaiterFunc) Wait(d time.Duration) { f(d) }

// SleepWaiter waits in real time.
var SleepWaiter Waiter = WaiterFunc(time.Sleep)
