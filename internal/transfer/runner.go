// internal/transfer/runner.go
package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/tamzrod/zestlink/internal/status"
)

// InputFunc supplies the parameters for cycle i.
type InputFunc func(i int) (x, y float64)

// LinearInputs returns x+stepX*i, y+stepY*i.
func LinearInputs(x, y, stepX, stepY float64) InputFunc {
	return func(i int) (float64, float64) {
		return x + stepX*float64(i), y + stepY*float64(i)
	}
}

// RunnerConfig is the minimal runtime config the runner needs.
type RunnerConfig struct {
	Cycles   int
	Interval time.Duration // 0 = back to back
	Inputs   InputFunc

	// ContinueOnError keeps running after a failed cycle.
	ContinueOnError bool
}

// Runner drives a bounded sequence of cycles on one channel.
type Runner struct {
	cfg     RunnerConfig
	cycle   *Cycle
	tracker status.Tracker
}

// NewRunner creates a runner with immutable config.
func NewRunner(cfg RunnerConfig, cycle *Cycle) (*Runner, error) {
	if cycle == nil {
		return nil, errors.New("runner: cycle required")
	}
	if cfg.Cycles <= 0 {
		return nil, errors.New("runner: cycles must be > 0")
	}
	if cfg.Interval < 0 {
		return nil, errors.New("runner: interval must be >= 0")
	}
	if cfg.Inputs == nil {
		return nil, errors.New("runner: inputs required")
	}
	return &Runner{cfg: cfg, cycle: cycle}, nil
}

// Status returns the health snapshot after the most recent cycle.
func (r *Runner) Status() status.Snapshot {
	return r.tracker.Snapshot()
}

// RunOnce performs cycle i and folds its outcome into the status.
func (r *Runner) RunOnce(i int) CycleResult {
	x, y := r.cfg.Inputs(i)
	res := CycleResult{
		Index: i,
		At:    time.Now(),
		InX:   x,
		InY:   y,
	}

	res.Result, res.Err = r.cycle.Run(x, y)

	if r.tracker.Observe(res.Err) {
		s := r.tracker.Snapshot()
		glog.Infof("link health %s (cycle=%d code=%d)", status.HealthName(s.Health), i, s.LastErrorCode)
	}
	res.Status = r.tracker.Snapshot()
	return res
}

// Run emits one CycleResult per cycle on out and closes out when done.
// The caller must drain out until it is closed.
// Cycles are strictly sequential. ctx is checked between cycles only;
// a cycle in flight always runs to completion or failure.
// A failed cycle ends the run unless ContinueOnError is set.
func (r *Runner) Run(ctx context.Context, out chan<- CycleResult) error {
	defer close(out)

	var tick <-chan time.Time
	if r.cfg.Interval > 0 {
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for i := 0; i < r.cfg.Cycles; i++ {
		if i > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		res := r.RunOnce(i)

		// A completed cycle is always delivered; the receiver drains until close.
		out <- res

		if res.Err != nil && !r.cfg.ContinueOnError {
			return fmt.Errorf("run aborted at cycle %d: %w", i, res.Err)
		}
	}

	return nil
}
