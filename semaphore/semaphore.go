// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"time"

	"github.com/threadkit/threadkit/clock"
	"github.com/threadkit/threadkit/diag"
	"go.uber.org/zap"
)

var (
	// ErrTimeout is returned when a timeout elapses while waiting for a unit.
	// This error does not apply when using a context.  ctx.Err() is returned in that case.
	ErrTimeout = errors.New("the semaphore could not be acquired within the timeout")
)

// DefaultLimit is the maximum count a semaphore created without WithLimit
// can reach.  Posting beyond the limit is treated as resource exhaustion.
const DefaultLimit = 1 << 20

// abort is indirected for testing.  Production behavior is diag.Abort.
var abort = diag.Abort

// Interface represents a counting semaphore.  The count is always nonnegative.
type Interface interface {
	// Post increments the count, releasing one blocked waiter if any is
	// present.  Post never blocks.  Exceeding the semaphore's limit is
	// unrecoverable and terminates the process.
	Post()

	// Wait blocks until the count is positive, then decrements it.
	Wait()

	// TryWait attempts to decrement the count, returning false immediately
	// if no unit was available.  This method never blocks.
	TryWait() bool

	// WaitTimeout waits up to the given duration for a unit.  It returns
	// nil if a unit was consumed and ErrTimeout if the duration elapsed.
	// A timeout is an ordinary outcome, never a fatal condition.
	WaitTimeout(time.Duration) error

	// WaitCtx waits for a unit until the given context is canceled, in
	// which case ctx.Err() is returned.
	WaitCtx(context.Context) error

	// Count returns the number of currently available units.  The value is
	// stale as soon as it is read and is intended for instrumentation.
	Count() int
}

// Option is a configuration option for a semaphore.
type Option func(*semaphore)

// WithClock supplies the clock used for timed waits.  A nil clock leaves the
// system clock in place.
func WithClock(c clock.Interface) Option {
	return func(s *semaphore) {
		if c != nil {
			s.c = c
		}
	}
}

// WithLimit caps the count the semaphore may reach.  Nonpositive limits are
// ignored.  The limit is raised to the initial count if necessary.
func WithLimit(limit int) Option {
	return func(s *semaphore) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// New constructs a semaphore with the given initial count.  A negative
// initial count results in a panic.
func New(initial int, options ...Option) Interface {
	if initial < 0 {
		panic("the initial count must be nonnegative")
	}

	s := &semaphore{
		limit: DefaultLimit,
		c:     clock.System(),
	}

	for _, o := range options {
		o(s)
	}

	if s.limit < initial {
		s.limit = initial
	}

	s.tokens = make(chan struct{}, s.limit)
	for i := 0; i < initial; i++ {
		s.tokens <- struct{}{}
	}

	return s
}

// semaphore is the internal Interface implementation
type semaphore struct {
	tokens chan struct{}
	limit  int
	c      clock.Interface
}

func (s *semaphore) Post() {
	select {
	case s.tokens <- struct{}{}:
	default:
		abort("semaphore count overflow", zap.Int("limit", s.limit))
	}
}

func (s *semaphore) Wait() {
	<-s.tokens
}

func (s *semaphore) TryWait() bool {
	select {
	case <-s.tokens:
		return true
	default:
		return false
	}
}

func (s *semaphore) WaitTimeout(d time.Duration) error {
	if d <= 0 {
		if s.TryWait() {
			return nil
		}

		return ErrTimeout
	}

	timer := s.c.NewTimer(d)
	defer timer.Stop()

	select {
	case <-s.tokens:
		return nil
	case <-timer.C():
		return ErrTimeout
	}
}

func (s *semaphore) WaitCtx(ctx context.Context) error {
	select {
	case <-s.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) Count() int {
	return len(s.tokens)
}
