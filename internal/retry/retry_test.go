package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry_AlwaysFails_CallsExactlyNTimes(t *testing.T) {
	calls := 0
	wantErr := errors.New("boom")

	_, err := WithRetry(context.Background(), Config{Attempts: 4, BaseDelay: 0}, func(ctx context.Context) (any, error) {
		calls++
		return nil, wantErr
	})

	assert.Equal(t, 4, calls)
	assert.ErrorIs(t, err, wantErr)
}

func TestWithRetry_SucceedsImmediately_NoExtraCalls(t *testing.T) {
	calls := 0

	value, err := WithRetry(context.Background(), Config{Attempts: 3, BaseDelay: 0}, func(ctx context.Context) (any, error) {
		calls++
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_SucceedsOnSecondAttempt(t *testing.T) {
	calls := 0

	value, err := WithRetry(context.Background(), Config{Attempts: 3, BaseDelay: 0}, func(ctx context.Context) (any, error) {
		calls++
		if calls < 2 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ContextCancelled_StopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := WithRetry(ctx, Config{Attempts: 5, BaseDelay: 10 * time.Millisecond}, func(ctx context.Context) (any, error) {
		calls++
		if calls == 1 {
			cancel()
		}
		return nil, errors.New("transient")
	})

	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 2)
}
