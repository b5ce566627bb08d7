// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/threadkit/threadkit/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithUnits establishes a metric that tracks the available unit count of the
// semaphore.  If a nil adder is supplied, unit counts are discarded.
func WithUnits(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.units = a
		} else {
			i.units = discard.NewCounter()
		}
	}
}

// WithTimeouts establishes a metric that tracks how many timed or context
// waits failed to consume a unit.  If a nil adder is supplied, timeout counts
// are discarded.
func WithTimeouts(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.timeouts = a
		} else {
			i.timeouts = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	is := &instrumentedSemaphore{
		Interface: s,
		units:     discard.NewCounter(),
		timeouts:  discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	units    xmetrics.Adder
	timeouts xmetrics.Adder
}

func (is *instrumentedSemaphore) Post() {
	is.Interface.Post()
	is.units.Add(1.0)
}

func (is *instrumentedSemaphore) Wait() {
	is.Interface.Wait()
	is.units.Add(-1.0)
}

func (is *instrumentedSemaphore) TryWait() bool {
	acquired := is.Interface.TryWait()
	if acquired {
		is.units.Add(-1.0)
	}

	return acquired
}

func (is *instrumentedSemaphore) WaitTimeout(d time.Duration) (err error) {
	err = is.Interface.WaitTimeout(d)
	if err != nil {
		is.timeouts.Add(1.0)
	} else {
		is.units.Add(-1.0)
	}

	return
}

func (is *instrumentedSemaphore) WaitCtx(ctx context.Context) (err error) {
	err = is.Interface.WaitCtx(ctx)
	if err != nil {
		is.timeouts.Add(1.0)
	} else {
		is.units.Add(-1.0)
	}

	return
}
