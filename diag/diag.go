// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

// Package diag reports unrecoverable resource failures.
//
// Primitives in this module distinguish two failure classes: caller contract
// violations, which panic at the call site, and exhaustion of underlying
// resources, which cannot be retried and terminate the process through Abort.
package diag

import (
	"os"
	"sync/atomic"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

var (
	logger atomic.Value

	// exit is indirected so tests can observe Abort without dying
	exit func(int) = os.Exit
)

// SetLogger replaces the logger used by Abort.  Passing nil restores the
// sallust default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = sallust.Default()
	}

	logger.Store(l)
}

// Logger returns the logger currently used by Abort.
func Logger() *zap.Logger {
	if l, ok := logger.Load().(*zap.Logger); ok {
		return l
	}

	return sallust.Default()
}

// Abort logs the given message at error level and terminates the process with
// a nonzero status.  It never returns.  Use this only for resource exhaustion
// that has no recovery path, never for expected failures such as timeouts.
func Abort(msg string, fields ...zap.Field) {
	l := Logger()
	l.Error(msg, fields...)
	_ = l.Sync()
	exit(1)
}
