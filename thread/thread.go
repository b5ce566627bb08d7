// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package thread provides explicit thread lifecycle management on top of
goroutines: creation, self-identity, join, and a joinable/detached ownership
model.

Each created thread runs through a trampoline that publishes its descriptor
in a registry slot keyed by the thread's opaque identity before user code
runs.  Joinable descriptors are owned by the creator until joined; detached
descriptors are dropped at creation and leave nothing behind at exit.
*/
package thread

import (
	"runtime"
	"sync"

	"github.com/threadkit/threadkit/identity"
)

// Mode determines who owns a thread's descriptor.
type Mode int

const (
	// Joinable threads must be reaped with Join to release their descriptor.
	Joinable Mode = iota

	// Detached threads own their descriptor and release it at exit.
	Detached
)

// Entry is the signature of a thread's entry point.  The returned value is
// retrievable through Join for joinable threads.
type Entry func(arg interface{}) interface{}

// Thread is a handle on a created thread or, via Self, on the calling one.
// Multiple handles for the same thread may exist; identity comparison is by
// thread id, never by handle equality.
type Thread struct {
	tid  identity.TID
	data *descriptor
}

type descriptor struct {
	mode Mode

	// mu guards exited and ret against a join racing the exiting thread.
	mu     sync.Mutex
	exited bool
	ret    interface{}

	done chan struct{}
}

// record stores the entry's return value exactly once.
func (d *descriptor) record(ret interface{}) {
	d.mu.Lock()
	if !d.exited {
		d.ret = ret
		d.exited = true
	}
	d.mu.Unlock()
}

// handle resolves a wait-handle for the running thread, or nil if it has
// already recorded its exit.  The handle is resolved fresh at join time;
// nothing captured at creation is reused, since thread identities may be
// recycled by the host.
func (d *descriptor) handle() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.exited {
		return nil
	}

	return d.done
}

// registry is the thread-local storage slot: descriptors keyed by the opaque
// identity of the goroutine running them.  Only joinable threads are
// published; a detached thread's descriptor is unreachable by design.
var registry = struct {
	sync.RWMutex
	slots map[identity.TID]*descriptor
}{
	slots: make(map[identity.TID]*descriptor),
}

func publish(tid identity.TID, d *descriptor) {
	registry.Lock()
	registry.slots[tid] = d
	registry.Unlock()
}

func unpublish(tid identity.TID) {
	registry.Lock()
	delete(registry.slots, tid)
	registry.Unlock()
}

func lookup(tid identity.TID) *descriptor {
	registry.RLock()
	d := registry.slots[tid]
	registry.RUnlock()
	return d
}

// Create spawns a new thread running entry(arg).  For Joinable mode the
// returned handle owns the descriptor and must eventually be passed to Join.
// For Detached mode the descriptor is owned by the new thread itself and the
// returned handle carries identity only.
func Create(entry Entry, arg interface{}, mode Mode) *Thread {
	if entry == nil {
		panic("thread: a nil entry point")
	}

	var (
		data    = &descriptor{mode: mode, done: make(chan struct{})}
		started = make(chan identity.TID, 1)
	)

	go func() {
		self := identity.Current()
		if mode != Detached {
			publish(self, data)
		}
		started <- self

		// Runs on normal return and on Exit alike: record the exit,
		// vacate the registry slot, and only then signal the handle.
		defer func() {
			if mode != Detached {
				unpublish(self)
			}
			close(data.done)
		}()

		data.record(entry(arg))
	}()

	t := &Thread{tid: <-started}
	if mode != Detached {
		t.data = data
	}

	return t
}

// Exit terminates the calling thread, recording ret as its return value if
// the thread is joinable.  User code after Exit does not run; deferred
// functions do.  Calling Exit from a goroutine not created by this package
// still terminates it, with nothing to record.
func Exit(ret interface{}) {
	if data := lookup(identity.Current()); data != nil {
		data.record(ret)
	}

	runtime.Goexit()
}

// Join blocks until the thread terminates and returns the value its entry
// returned (or passed to Exit).  Join is a no-op returning nil for detached
// threads and for handles whose descriptor reference is absent.  The caller
// that joins owns the descriptor; joining the same descriptor twice is not
// supported.
func (t *Thread) Join() interface{} {
	if t == nil || t.data == nil {
		return nil
	}

	data := t.data
	if h := data.handle(); h != nil {
		<-h
	}

	data.mu.Lock()
	ret := data.ret
	data.mu.Unlock()

	t.data = nil
	return ret
}

// ID returns the thread's opaque identity.
func (t *Thread) ID() identity.TID {
	return t.tid
}

// IsSelf reports whether the handle refers to the calling thread.  The
// comparison is by native identity, not handle equality.
func (t *Thread) IsSelf() bool {
	return t != nil && t.tid == identity.Current()
}

// Self returns a handle for the calling thread.  For threads created through
// this package in joinable mode, the handle shares the published descriptor;
// for detached and foreign goroutines it carries identity only.
func Self() *Thread {
	self := identity.Current()
	return &Thread{
		tid:  self,
		data: lookup(self),
	}
}
