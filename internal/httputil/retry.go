// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the shared retry policy for outbound API calls.
//
// Implements: prd002-websearch (R3.1-R3.4); prd003-llm (R2.2).
package httputil

import (
	"context"
	"fmt"
	"math"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff between
// failed attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxAttempts = 3

// Policy describes how an operation is retried: the total number of
// attempts and the base backoff delay. The delay doubles after every
// failed attempt: base, 2*base, 4*base, and so on (R3.2).
//
// The zero value is usable; Do substitutes defaultMaxAttempts and
// RetryBaseDelay for unset fields.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy returns the engine-wide policy: three attempts with
// backoff starting at RetryBaseDelay (R3.1).
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: defaultMaxAttempts, BaseDelay: RetryBaseDelay}
}

// Do runs fn until it returns nil, attempts are exhausted, or ctx is
// cancelled. If the context is cancelled during a backoff wait the
// context error is returned. After the final failure the last error is
// wrapped with the attempt count (R3.3).
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	base := p.BaseDelay
	if base <= 0 {
		base = RetryBaseDelay
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		backoff := time.Duration(math.Pow(2, float64(attempt-1))) * base
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
