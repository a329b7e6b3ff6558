// Package retry wraps flaky outbound calls (LLM, email delivery) with a
// bounded attempt loop. Source fetches and extraction deliberately do not
// use it; a failed provider contributes nothing to the current run.
package retry

import (
	"context"
	"fmt"
	"time"
)

type Config struct {
	Attempts int
	Delay    time.Duration
	Backoff  bool // linear backoff: attempt * Delay
}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == cfg.Attempts {
				return fmt.Errorf("failed after %d attempts: %w", cfg.Attempts, err)
			}

			delay := cfg.Delay
			if cfg.Backoff {
				delay = time.Duration(attempt) * cfg.Delay
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		return nil
	}

	return lastErr
}
