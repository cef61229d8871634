// internal/transfer/runner_test.go
package transfer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/zestlink/internal/status"
)

var noWait = WaiterFunc(func(time.Duration) {})

func newTestRunner(t *testing.T, ch *fakeChannel, cfg RunnerConfig) *Runner {
	t.Helper()
	c, err := NewCycle(CycleConfig{Layout: defaultLayout(), Waiter: noWait}, ch)
	require.NoError(t, err)
	if cfg.Inputs == nil {
		cfg.Inputs = LinearInputs(2.2, 1.1, 0, 0)
	}
	r, err := NewRunner(cfg, c)
	require.NoError(t, err)
	return r
}

func collect(ctx context.Context, t *testing.T, r *Runner) ([]CycleResult, error) {
	t.Helper()
	out := make(chan CycleResult)
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx, out) }()

	var got []CycleResult
	for res := range out {
		got = append(got, res)
	}
	return got, <-errc
}

func TestRunOnce_Success(t *testing.T) {
	r := newTestRunner(t, newFakeChannel(nil), RunnerConfig{Cycles: 1})

	res := r.RunOnce(0)
	require.NoError(t, res.Err)
	assert.Equal(t, 2.2, res.InX)
	assert.Equal(t, status.HealthOK, res.Status.Health)
}

func TestRunOnce_Failure(t *testing.T) {
	ch := newFakeChannel(nil)
	ch.failWrite = 1
	r := newTestRunner(t, ch, RunnerConfig{Cycles: 1})

	res := r.RunOnce(0)
	require.Error(t, res.Err)
	assert.Equal(t, status.HealthError, res.Status.Health)
	assert.Equal(t, uint16(1), res.Status.LastErrorCode) // channel write
}

func TestRun_AllCyclesSequential(t *testing.T) {
	ch := newFakeChannel(nil)
	r := newTestRunner(t, ch, RunnerConfig{
		Cycles: 5,
		Inputs: LinearInputs(2.2, 1.1, 0.1, -0.1),
	})

	got, err := collect(context.Background(), t, r)
	require.NoError(t, err)
	require.Len(t, got, 5)

	for i, res := range got {
		assert.Equal(t, i, res.Index)
		assert.InDelta(t, 2.2+0.1*float64(i), res.InX, 1e-12)
		assert.InDelta(t, 1.1-0.1*float64(i), res.InY, 1e-12)
	}
	assert.Len(t, ch.writesOnly(), 5*8)
	assert.Equal(t, uint32(5), r.Status().Cycles)
}

func TestRun_AbortOnError(t *testing.T) {
	ch := newFakeChannel(nil)
	ch.failWrite = 9 // first write of cycle 1
	r := newTestRunner(t, ch, RunnerConfig{Cycles: 5})

	got, err := collect(context.Background(), t, r)
	require.Error(t, err)
	require.Len(t, got, 2)
	assert.NoError(t, got[0].Err)
	assert.Error(t, got[1].Err)
	assert.ErrorIs(t, err, errBus)
}

func TestRun_ContinueOnError(t *testing.T) {
	ch := newFakeChannel(nil)
	ch.failWrite = 9
	r := newTestRunner(t, ch, RunnerConfig{Cycles: 3, ContinueOnError: true})

	got, err := collect(context.Background(), t, r)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Error(t, got[1].Err)
	assert.NoError(t, got[2].Err)

	s := r.Status()
	assert.Equal(t, status.HealthOK, s.Health)
	assert.Equal(t, uint32(1), s.Failures)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ch := newFakeChannel(nil)
	r := newTestRunner(t, ch, RunnerConfig{Cycles: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := collect(ctx, t, r)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
	assert.Empty(t, ch.ops)
}

func TestRun_CancelDuringCycleStillDelivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := newFakeChannel(nil)
	cancelOnSettle := WaiterFunc(func(time.Duration) { cancel() })

	c, err := NewCycle(CycleConfig{Layout: defaultLayout(), Waiter: cancelOnSettle}, ch)
	require.NoError(t, err)
	r, err := NewRunner(RunnerConfig{Cycles: 3, Inputs: LinearInputs(2.2, 1.1, 0, 0)}, c)
	require.NoError(t, err)

	got, err := collect(ctx, t, r)
	assert.ErrorIs(t, err, context.Canceled)

	// the cycle in flight finished and was reported; no further cycle started
	require.Len(t, got, 1)
	assert.NoError(t, got[0].Err)
	assert.Equal(t, uint32(1), r.Status().Cycles)
	assert.Len(t, ch.writesOnly(), 8)
}

func TestRun_Interval(t *testing.T) {
	r := newTestRunner(t, newFakeChannel(nil), RunnerConfig{Cycles: 3, Interval: 5 * time.Millisecond})

	start := time.Now()
	got, err := collect(context.Background(), t, r)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestNewRunner_Validation(t *testing.T) {
	c, err := NewCycle(CycleConfig{Layout: defaultLayout(), Waiter: noWait}, newFakeChannel(nil))
	require.NoError(t, err)

	in := LinearInputs(0, 0, 0, 0)

	_, err = NewRunner(RunnerConfig{Cycles: 0, Inputs: in}, c)
	assert.Error(t, err)
	_, err = NewRunner(RunnerConfig{Cycles: 1}, c)
	assert.Error(t, err)
	_, err = NewRunner(RunnerConfig{Cycles: 1, Inputs: in, Interval: -1}, c)
	assert.Error(t, err)
	_, err = NewRunner(RunnerConfig{Cycles: 1, Inputs: in}, nil)
	assert.Error(t, err)
}
