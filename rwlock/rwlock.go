// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package rwlock provides a writer-preferring reader/writer lock emulated from
two exclusive locks and a manual-reset "no readers" event.

An arriving writer takes the writer guard and keeps it for the whole write
critical section.  Readers must pass through the same guard to register, so
a waiting writer blocks new readers from registering even while it is itself
waiting for existing readers to drain.  No bound is guaranteed on writer
admission latency under continuous reader bursts that arrive before the
writer secures the guard.
*/
package rwlock

import (
	"sync"
	"sync/atomic"

	"github.com/threadkit/threadkit/event"
	"github.com/threadkit/threadkit/identity"
)

// Lock is a reader/writer lock.  Instances must be created with New and must
// not be copied after first use.
type Lock struct {
	// writerGuard excludes writers from each other and blocks new readers
	// from registering while a writer is waiting or active.
	writerGuard sync.Mutex

	// readerGuard protects the reader count transitions and the paired
	// event operations.
	readerGuard sync.Mutex

	// readers is mutated under readerGuard and loaded atomically by a
	// writer deciding whether it must wait.
	readers int32

	// writer is the identity of the active writer, identity.None when the
	// write side is unheld.
	writer int64

	// noReaders is set exactly when the reader count is zero.
	noReaders *event.Event
}

// New constructs an unheld Lock.
func New() *Lock {
	return &Lock{
		noReaders: event.NewManualReset(true),
	}
}

// RLock acquires the read side.  Multiple readers may hold the lock
// concurrently.  A thread holding the write side must not call RLock; doing
// so panics.
func (l *Lock) RLock() {
	if identity.TID(atomic.LoadInt64(&l.writer)) == identity.Current() {
		panic("rwlock: read lock while holding the write side")
	}

	// Passing through writerGuard closes the race where the reader count
	// flips 0->1 concurrently with a writer that has already sampled it
	// and is about to wait on (or skip) the no-readers event.
	l.writerGuard.Lock()
	l.readerGuard.Lock()
	if atomic.AddInt32(&l.readers, 1) == 1 {
		l.noReaders.Reset()
	}
	l.readerGuard.Unlock()
	l.writerGuard.Unlock()
}

// Lock acquires the write side, waiting for concurrent readers to drain.
// The writer guard is held until the matching Unlock, which is what gives
// writers preference over readers that arrive later.
func (l *Lock) Lock() {
	l.writerGuard.Lock()

	// The count cannot go 0->1 here because registration requires
	// writerGuard.  A 1->0 transition just makes this a wait that
	// returns immediately.
	if atomic.LoadInt32(&l.readers) > 0 {
		l.noReaders.Wait()
	}

	atomic.StoreInt64(&l.writer, int64(identity.Current()))
}

// Unlock releases whichever side the caller holds.  A writer is recognized
// by identity; everyone else is assumed to be a reader, and releasing an
// unheld lock panics.
func (l *Lock) Unlock() {
	if identity.TID(atomic.LoadInt64(&l.writer)) == identity.Current() {
		atomic.StoreInt64(&l.writer, int64(identity.None))
		l.writerGuard.Unlock()
		return
	}

	l.readerGuard.Lock()
	if atomic.LoadInt32(&l.readers) < 1 {
		l.readerGuard.Unlock()
		panic("rwlock: unlock of an unheld lock")
	}

	if atomic.AddInt32(&l.readers, -1) == 0 {
		l.noReaders.Set()
	}
	l.readerGuard.Unlock()
}

// Destroy asserts that the lock is unheld on both sides.  The lock must not
// be used afterward.
func (l *Lock) Destroy() {
	if atomic.LoadInt32(&l.readers) != 0 || identity.TID(atomic.LoadInt64(&l.writer)) != identity.None {
		panic("rwlock: destroy of a held lock")
	}
}
