// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package mutex provides an error-checking exclusive lock with owner tracking.

The lock is built from an atomic contention word and a counting semaphore
used purely as a wake-channel: an uncontended acquisition or release is a
single atomic operation and touches no channel at all.  Ownership is
recorded per acquisition, which lets the lock detect self-relock and
unlock-by-non-owner, both of which are caller bugs and panic.
*/
package mutex

import (
	"sync/atomic"

	"github.com/threadkit/threadkit/identity"
	"github.com/threadkit/threadkit/semaphore"
)

// Mutex is an exclusive lock.  Instances must be created with New and must
// not be copied after first use.
type Mutex struct {
	// count is the contention word.  It tracks the holder plus all
	// blocked acquirers; a 0->1 transition acquires without blocking.
	count int32

	// owner is the identity of the current holder, identity.None when
	// unheld.  Written only by the holder; read atomically elsewhere for
	// error checking.
	owner int64

	// wake delivers exactly one unit per contended release.
	wake semaphore.Interface
}

// New constructs an unheld Mutex.
func New() *Mutex {
	return &Mutex{
		wake: semaphore.New(0),
	}
}

// Lock acquires the lock, blocking until it is available.  Attempting to
// acquire a lock already held by the caller panics.
func (m *Mutex) Lock() {
	self := identity.Current()
	if identity.TID(atomic.LoadInt64(&m.owner)) == self {
		panic("mutex: lock of an already held mutex by the same thread")
	}

	if atomic.AddInt32(&m.count, 1) != 1 {
		m.wake.Wait()
	}

	atomic.StoreInt64(&m.owner, int64(self))
}

// TryLock attempts to acquire the lock without blocking, returning true if
// the lock was acquired.  Attempting to acquire a lock already held by the
// caller panics.
func (m *Mutex) TryLock() bool {
	self := identity.Current()
	if identity.TID(atomic.LoadInt64(&m.owner)) == self {
		panic("mutex: trylock of an already held mutex by the same thread")
	}

	if !atomic.CompareAndSwapInt32(&m.count, 0, 1) {
		return false
	}

	atomic.StoreInt64(&m.owner, int64(self))
	return true
}

// Unlock releases the lock.  Only the current owner may unlock; any other
// caller panics.  When other threads are blocked in Lock, exactly one of
// them is released.
func (m *Mutex) Unlock() {
	if identity.TID(atomic.LoadInt64(&m.owner)) != identity.Current() {
		panic("mutex: unlock of a mutex not held by the calling thread")
	}

	atomic.StoreInt64(&m.owner, int64(identity.None))
	if atomic.AddInt32(&m.count, -1) != 0 {
		m.wake.Post()
	}
}

// Held reports whether the calling thread is the current owner.
func (m *Mutex) Held() bool {
	return identity.TID(atomic.LoadInt64(&m.owner)) == identity.Current()
}

// Destroy asserts that the lock is neither held nor contended.  The lock
// must not be used afterward.
func (m *Mutex) Destroy() {
	if atomic.LoadInt32(&m.count) != 0 || identity.TID(atomic.LoadInt64(&m.owner)) != identity.None {
		panic("mutex: destroy of a held mutex")
	}
}
