// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry runs operations with bounded exponential backoff.
package retry

import (
	"context"
	"math"
	"time"
)

// BaseDelay controls the base duration for exponential backoff between
// attempts. Tests override this to avoid real sleeps.
var BaseDelay = 2 * time.Second

// DefaultMaxRetries is the attempt cap used when the caller passes 0.
const DefaultMaxRetries = 3

// Do executes fn and retries while retryable reports the returned error as
// worth another attempt. The delay starts at BaseDelay and doubles each
// attempt: 2 s, 4 s, 8 s.
//
// When maxRetries is 0 the default (3) is used. Non-retryable errors return
// immediately. If the context is cancelled during a backoff wait, Do returns
// ctx.Err(). After exhausting retries the last error is returned so the
// caller can demote the entry rather than abort.
func Do(ctx context.Context, maxRetries int, retryable func(error) bool, fn func() error) error {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !retryable(err) {
			return err
		}

		// Exhausted retries; hand the last transient error back.
		if attempt >= maxRetries {
			return err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * BaseDelay

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}
