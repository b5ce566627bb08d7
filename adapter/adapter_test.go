package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog(t *testing.T) {
	t.Run("Pairs", func(t *testing.T) {
		var (
			assert        = assert.New(t)
			require       = require.New(t)
			core, entries = observer.New(zap.InfoLevel)
			l             = Logger{zap.New(core)}
		)

		assert.NoError(l.Log("msg", "hello", "attempt", 1))

		records := entries.All()
		require.Len(records, 1)

		fields := records[0].ContextMap()
		assert.Equal("hello", fields["msg"])
		assert.EqualValues(1, fields["attempt"])
	})

	t.Run("NonStringKey", func(t *testing.T) {
		var (
			assert        = assert.New(t)
			require       = require.New(t)
			core, entries = observer.New(zap.InfoLevel)
			l             = Logger{zap.New(core)}
		)

		assert.NoError(l.Log(42, "value"))

		records := entries.All()
		require.Len(records, 1)
		assert.Contains(records[0].ContextMap(), "42")
	})

	t.Run("DanglingKey", func(t *testing.T) {
		var (
			assert        = assert.New(t)
			require       = require.New(t)
			core, entries = observer.New(zap.InfoLevel)
			l             = Logger{zap.New(core)}
		)

		assert.NoError(l.Log("alone"))

		records := entries.All()
		require.Len(records, 1)
		assert.Contains(records[0].ContextMap(), "alone")
	})
}
