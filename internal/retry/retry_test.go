// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	BaseDelay = 1 * time.Millisecond
}

var errTransient = errors.New("transient")

func transientOnly(err error) bool { return errors.Is(err, errTransient) }

func TestDo_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 5, transientOnly, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesThenSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 5, transientOnly, func() error {
		calls++
		if calls <= 2 {
			return errTransient
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	maxRetries := 3
	err := Do(context.Background(), maxRetries, transientOnly, func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	// 1 initial + 3 retries = 4 total calls.
	assert.Equal(t, 4, calls)
}

func TestDo_NonRetryableReturnsImmediately(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Do(context.Background(), 5, transientOnly, func() error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_DefaultMaxRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 0, transientOnly, func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	// 1 initial + 3 default retries = 4 total calls.
	assert.Equal(t, 4, calls)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	// Use a longer base delay so the context cancels during the wait.
	old := BaseDelay
	BaseDelay = 500 * time.Millisecond
	defer func() { BaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	err := Do(ctx, 5, transientOnly, func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, calls)
}
