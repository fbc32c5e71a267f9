package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	waits []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	rec := &sleepRecorder{}
	p := NewPolicy(3, time.Second)
	p.Sleep = rec.sleep

	calls := 0
	err := Do(context.Background(), p, func(context.Context, int) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, rec.waits)
}

func TestDoExhausted(t *testing.T) {
	rec := &sleepRecorder{}
	p := NewPolicy(3, time.Second)
	p.Sleep = rec.sleep

	cause := errors.New("status 503")
	err := Do(context.Background(), p, func(context.Context, int) error { return cause })

	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, cause)
	// no wait after the last attempt
	assert.Len(t, rec.waits, 2)
}

func TestDoPermanentStopsImmediately(t *testing.T) {
	rec := &sleepRecorder{}
	p := NewPolicy(5, time.Second)
	p.Sleep = rec.sleep

	cause := errors.New("bad request")
	calls := 0
	err := Do(context.Background(), p, func(context.Context, int) error {
		calls++
		return &Permanent{Err: cause}
	})

	assert.Equal(t, cause, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.waits)
}

func TestExponential(t *testing.T) {
	b := Exponential(time.Second)
	assert.Equal(t, time.Second, b(0))
	assert.Equal(t, 2*time.Second, b(1))
	assert.Equal(t, 4*time.Second, b(2))
}

func TestContextSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ContextSleep(ctx, time.Hour), context.Canceled)
}
