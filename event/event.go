// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package event provides manual-reset and auto-reset signal objects.

A manual-reset event, once set, releases every current and future waiter
until it is explicitly reset.  An auto-reset event releases exactly one
waiter per Set: if no waiter is blocked, the event stays signaled until the
next Wait consumes it.  These are the signal primitives the condition
variable and reader/writer lock emulations are built from.
*/
package event

import (
	"errors"
	"sync"
	"time"

	"github.com/threadkit/threadkit/clock"
)

// ErrTimeout is returned by WaitTimeout when the event was not signaled
// within the timeout.
var ErrTimeout = errors.New("the event was not signaled within the timeout")

// Event is a resettable signal.  Instances must be created with
// NewManualReset or NewAutoReset.
type Event struct {
	manual bool
	c      clock.Interface

	mu       sync.Mutex
	signaled bool
	gate     chan struct{}
}

// Option is a configuration option for an Event.
type Option func(*Event)

// WithClock supplies the clock used for timed waits.  A nil clock leaves the
// system clock in place.
func WithClock(c clock.Interface) Option {
	return func(e *Event) {
		if c != nil {
			e.c = c
		}
	}
}

// NewManualReset constructs a manual-reset event with the given initial state.
func NewManualReset(signaled bool, options ...Option) *Event {
	return newEvent(true, signaled, options)
}

// NewAutoReset constructs an auto-reset event with the given initial state.
func NewAutoReset(signaled bool, options ...Option) *Event {
	return newEvent(false, signaled, options)
}

func newEvent(manual, signaled bool, options []Option) *Event {
	e := &Event{
		manual:   manual,
		signaled: signaled,
		c:        clock.System(),
	}

	for _, o := range options {
		o(e)
	}

	e.gate = make(chan struct{})
	if signaled {
		close(e.gate)
	}

	return e
}

// Set signals the event.  For a manual-reset event, all current waiters are
// released and subsequent waits return immediately until Reset.  For an
// auto-reset event, one waiter is released; if none is blocked, the event
// remains signaled for the next Wait.  Setting an already signaled event has
// no effect.
func (e *Event) Set() {
	e.mu.Lock()
	if !e.signaled {
		e.signaled = true
		close(e.gate)
	}
	e.mu.Unlock()
}

// Reset puts the event into the unsignaled state.  Resetting an unsignaled
// event has no effect.
func (e *Event) Reset() {
	e.mu.Lock()
	if e.signaled {
		e.signaled = false
		e.gate = make(chan struct{})
	}
	e.mu.Unlock()
}

// consume implements the auto-reset behavior: the first waiter through the
// gate atomically takes the signal with it.  Returns false if another waiter
// won the race and the caller must block on the (fresh) gate again.
func (e *Event) consume() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.signaled {
		return false
	}

	if !e.manual {
		e.signaled = false
		e.gate = make(chan struct{})
	}

	return true
}

func (e *Event) currentGate() chan struct{} {
	e.mu.Lock()
	gate := e.gate
	e.mu.Unlock()
	return gate
}

// Wait blocks until the event is signaled.
func (e *Event) Wait() {
	for {
		<-e.currentGate()

		if e.consume() {
			return
		}
	}
}

// TryWait consumes the signal if the event is currently signaled.  This
// method never blocks.
func (e *Event) TryWait() bool {
	return e.consume()
}

// WaitTimeout blocks until the event is signaled or the given duration
// elapses, returning ErrTimeout in the latter case.  A timeout is an
// ordinary outcome, never a fatal condition.
func (e *Event) WaitTimeout(d time.Duration) error {
	if e.consume() {
		return nil
	}

	if d <= 0 {
		return ErrTimeout
	}

	timer := e.c.NewTimer(d)
	defer timer.Stop()

	for {
		gate := e.currentGate()

		select {
		case <-gate:
			if e.consume() {
				return nil
			}
		case <-timer.C():
			return ErrTimeout
		}
	}
}
