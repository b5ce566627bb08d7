package diag

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDefault(t *testing.T) {
	require.NotNil(t, Logger())
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	custom := zap.NewNop()
	SetLogger(custom)
	assert.Equal(t, custom, Logger())

	SetLogger(nil)
	assert.NotNil(t, Logger())
}

func TestAbort(t *testing.T) {
	var (
		assert        = assert.New(t)
		core, entries = observer.New(zap.ErrorLevel)
		exitCode      = -1
	)

	defer SetLogger(nil)
	SetLogger(zap.New(core))

	exit = func(code int) { exitCode = code }
	defer func() { exit = os.Exit }()

	Abort("out of handles", zap.String("primitive", "semaphore"))

	assert.Equal(1, exitCode)
	records := entries.All()
	if assert.Len(records, 1) {
		assert.Equal("out of handles", records[0].Message)
	}
}
