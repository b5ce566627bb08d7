// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package cond provides a condition variable bound to a single mutex, emulated
from a counting semaphore and an auto-reset event.

A bare semaphore cannot distinguish signal-for-one from broadcast-for-all
relative to waiters that arrive concurrently: wake units posted for the
waiters present at signal time could be consumed by later arrivals.  The
emulation therefore keeps a small state machine of (waiters, target) whose
mutation is only valid while the bound mutex is held by the mutator, plus a
rendezvous event that holds the signaler until exactly the intended waiters
have consumed their wake units.
*/
package cond

import (
	"sync/atomic"

	"github.com/threadkit/threadkit/event"
	"github.com/threadkit/threadkit/mutex"
	"github.com/threadkit/threadkit/semaphore"
)

// Cond is a condition variable.  Instances must be created with New and are
// permanently bound to the mutex supplied there.
type Cond struct {
	m *mutex.Mutex

	// waiters is incremented under the bound mutex and decremented by the
	// waking waiter outside it; the decrement is atomic for that reason.
	waiters int32

	// target is the waiter count at which the last released waiter must
	// trigger the rendezvous.  Only written while the mutex is held.
	target int32

	// sema is the wake-channel: one unit per waiter to release.
	sema semaphore.Interface

	// rendezvous holds a signaler or broadcaster until the waiters it
	// released have all decremented.
	rendezvous *event.Event
}

// New constructs a Cond bound to the given mutex.  Every Wait, Signal, and
// Broadcast must be made with that mutex held by the caller.
func New(m *mutex.Mutex) *Cond {
	if m == nil {
		panic("cond: a bound mutex is required")
	}

	return &Cond{
		m:          m,
		sema:       semaphore.New(0),
		rendezvous: event.NewAutoReset(false),
	}
}

// Wait atomically releases the bound mutex and blocks until the condition is
// signaled, then re-acquires the mutex before returning.  The caller must
// hold the bound mutex.  As with any condition variable, callers should
// re-check their predicate in a loop around Wait.
func (c *Cond) Wait() {
	if !c.m.Held() {
		panic("cond: wait without holding the bound mutex")
	}

	// Safe: the mutex is held, so no signaler can read waiters now.
	atomic.AddInt32(&c.waiters, 1)

	// The increment above is all the bookkeeping that needs the mutex, so
	// it can be released before blocking on the wake-channel.
	c.m.Unlock()

	c.sema.Wait()

	// The decrement happens outside the mutex.  A signaler is parked on
	// the rendezvous event with the mutex held, so the counters cannot be
	// mutated concurrently by anyone else.  The waiter that brings the
	// count down to the recorded target is the last one the signaler is
	// waiting for, and lets it continue.  This bookkeeping must run even
	// on an unexpected wakeup, or wake units would be over-delivered.
	if atomic.AddInt32(&c.waiters, -1) == atomic.LoadInt32(&c.target) {
		c.rendezvous.Set()
	}

	c.m.Lock()
}

// Signal releases exactly one waiter, if any is blocked in Wait.  The caller
// must hold the bound mutex.  Signal does not return until the released
// waiter has recorded its wakeup, which prevents a subsequent Signal or
// Broadcast from miscounting.
func (c *Cond) Signal() {
	if !c.m.Held() {
		panic("cond: signal without holding the bound mutex")
	}

	// waiters is only incremented under the bound mutex, so this read is
	// stable: nobody can register while we hold it.
	if atomic.LoadInt32(&c.waiters) == 0 {
		return
	}

	atomic.StoreInt32(&c.target, atomic.LoadInt32(&c.waiters)-1)
	c.sema.Post()
	c.rendezvous.Wait()
}

// Broadcast releases every waiter currently blocked in Wait.  The caller
// must hold the bound mutex.  Waiters that call Wait after Broadcast returns
// are unaffected.  The released waiters contend for the mutex once the
// caller eventually unlocks it.
func (c *Cond) Broadcast() {
	if !c.m.Held() {
		panic("cond: broadcast without holding the bound mutex")
	}

	n := atomic.LoadInt32(&c.waiters)
	if n == 0 {
		return
	}

	atomic.StoreInt32(&c.target, 0)
	for i := int32(0); i < n; i++ {
		c.sema.Post()
	}

	// Every waiter present at the read of n above takes one unit.  The
	// mutex is still held here, so none of them can get back into Wait
	// and consume more than its slice; the last one to decrement wakes us.
	c.rendezvous.Wait()
}

// Destroy asserts that no waiters remain.  The Cond must not be used
// afterward.
func (c *Cond) Destroy() {
	if atomic.LoadInt32(&c.waiters) != 0 {
		panic("cond: destroy with blocked waiters")
	}
}
