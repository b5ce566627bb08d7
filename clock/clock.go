// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides a minimal abstraction over the time package so that
// timed waits can be driven deterministically in tests.
package clock

import "time"

// Interface represents the subset of the time package used by timed waits.
type Interface interface {
	Now() time.Time
	Sleep(time.Duration)
	NewTimer(time.Duration) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}
