// Package ratelimit caps LLM usage: a per-run request budget plus a minimum
// gap between consecutive calls, so one oversized run can't burn through an
// API quota.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dailybrief/internal/logger"
)

type Limiter struct {
	mu       sync.Mutex
	used     int
	max      int // 0 = unlimited
	interval time.Duration
	last     time.Time
}

func New(max int, interval time.Duration) *Limiter {
	return &Limiter{max: max, interval: interval}
}

// Acquire blocks until the minimum interval since the previous call has
// passed, then consumes one request from the budget. It fails when the
// budget is exhausted or the context is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	if l.max > 0 && l.used >= l.max {
		l.mu.Unlock()
		return fmt.Errorf("llm request budget exhausted (%d/%d)", l.used, l.max)
	}
	wait := time.Duration(0)
	if !l.last.IsZero() {
		if elapsed := time.Since(l.last); elapsed < l.interval {
			wait = l.interval - elapsed
		}
	}
	l.mu.Unlock()

	if wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.used++
	l.last = time.Now()
	if l.max > 0 {
		logger.Debug("llm request budget", "used", l.used, "max", l.max)
	}
	return nil
}

// Used reports how many requests this run has consumed.
func (l *Limiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}
