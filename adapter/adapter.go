// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

// Package adapter bridges zap loggers to go-kit's log.Logger so that go-kit
// based consumers can receive diagnostics from this module.
package adapter

import (
	"fmt"

	"github.com/go-kit/log"
	"go.uber.org/zap"
)

// Logger wraps a zap logger in go-kit's log.Logger contract.
type Logger struct {
	*zap.Logger
}

var _ log.Logger = Logger{}

// Log maps go-kit keyvals onto zap fields at info level.  A trailing key
// without a value is recorded with a nil value rather than dropped.
func (l Logger) Log(keyvals ...interface{}) error {
	fields := make([]zap.Field, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}

		var value interface{}
		if i+1 < len(keyvals) {
			value = keyvals[i+1]
		}

		fields = append(fields, zap.Any(key, value))
	}

	l.Logger.Info("", fields...)
	return nil
}
