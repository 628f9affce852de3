package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDoWithResult_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 3, Backoff: ConstantBackoff(time.Millisecond)}

	result, err := DoWithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDoWithResult_ExhaustsAttempts(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 2, Backoff: ConstantBackoff(time.Millisecond)}

	_, err := DoWithResult(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 2, calls)
}

func TestDoWithResult_NonRetryableErrorIsReturned(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	cfg := Config{
		MaxAttempts: 5,
		Backoff:     ConstantBackoff(time.Millisecond),
		ShouldRetry: func(err error) bool { return !errors.Is(err, permanent) },
	}

	err := Do(context.Background(), cfg, func() error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, Config{MaxAttempts: 3}, func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestDoWithResult_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 3, Backoff: ConstantBackoff(time.Hour)}

	err := Do(ctx, cfg, func() error {
		cancel()
		return errTransient
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, errTransient)
}

func TestExponentialBackoff_Grows(t *testing.T) {
	backoff := ExponentialBackoff(10 * time.Millisecond)

	first := backoff(1)
	third := backoff(3)

	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.LessOrEqual(t, first, 15*time.Millisecond)
	assert.GreaterOrEqual(t, third, 40*time.Millisecond)
}
