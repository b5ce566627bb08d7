// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"runtime"
	"strconv"
)

// TID is an opaque identifier for the calling execution context.  Values are
// unique among live goroutines and are never reused while the goroutine runs.
// The numeric value carries no meaning beyond identity comparison.
type TID int64

// None is the zero TID.  It is never assigned to a live goroutine, which makes
// it usable as an "unowned" marker in owner-tracking primitives.
const None TID = 0

// String formats the identifier for diagnostics.
func (t TID) String() string {
	if t == None {
		return "tid(none)"
	}

	return "tid(" + strconv.FormatInt(int64(t), 10) + ")"
}

// Current returns the identifier of the calling goroutine.
//
// The identifier is parsed from the first line of the runtime stack header,
// which has the fixed format "goroutine N [state]:".  This is the portable
// path; it costs a runtime.Stack call, so owner-tracking primitives capture
// it once per acquisition rather than per comparison.
func Current() TID {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parse(buf[:n])
}

const header = "goroutine "

func parse(buf []byte) TID {
	if len(buf) < len(header) || string(buf[:len(header)]) != header {
		return None
	}

	var id int64
	for _, c := range buf[len(header):] {
		if c < '0' || c > '9' {
			break
		}

		id = id*10 + int64(c-'0')
	}

	return TID(id)
}
