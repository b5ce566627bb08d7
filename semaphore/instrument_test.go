package semaphore

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadkit/threadkit/xmetrics"
)

// testAdder is a trivial in-memory xmetrics.Adder
type testAdder struct {
	value float64
}

func (ta *testAdder) Add(delta float64) {
	ta.value += delta
}

func TestInstrument(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := Instrument(New(1))
		require.NotNil(t, s)

		// all metrics discarded, but behavior is unchanged
		s.Wait()
		s.Post()
		assert.Equal(t, 1, s.Count())
	})

	t.Run("NilMetrics", func(t *testing.T) {
		s := Instrument(New(1), WithUnits(nil), WithTimeouts(nil))
		require.NotNil(t, s)
		s.Wait()
		s.Post()
	})

	t.Run("Units", func(t *testing.T) {
		var (
			assert = assert.New(t)
			units  = new(testAdder)
			s      = Instrument(New(0), WithUnits(units))
		)

		s.Post()
		s.Post()
		assert.Equal(2.0, units.value)

		s.Wait()
		assert.Equal(1.0, units.value)

		assert.True(s.TryWait())
		assert.Equal(0.0, units.value)
		assert.False(s.TryWait())
		assert.Equal(0.0, units.value)

		s.Post()
		assert.NoError(s.WaitTimeout(time.Minute))
		assert.Equal(0.0, units.value)

		s.Post()
		assert.NoError(s.WaitCtx(context.Background()))
		assert.Equal(0.0, units.value)
	})

	t.Run("Timeouts", func(t *testing.T) {
		var (
			assert   = assert.New(t)
			timeouts = new(testAdder)
			s        = Instrument(New(0), WithTimeouts(timeouts))
		)

		assert.Equal(ErrTimeout, s.WaitTimeout(0))
		assert.Equal(1.0, timeouts.value)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Equal(context.Canceled, s.WaitCtx(ctx))
		assert.Equal(2.0, timeouts.value)
	})

	t.Run("PrometheusBacked", func(t *testing.T) {
		var (
			require  = require.New(t)
			assert   = assert.New(t)
			registry = prometheus.NewRegistry()
			units    = xmetrics.NewGauge(registry, prometheus.GaugeOpts{
				Name: "semaphore_units",
				Help: "currently available semaphore units",
			})
			s = Instrument(New(0), WithUnits(units))
		)

		s.Post()
		s.Post()
		s.Wait()

		families, err := registry.Gather()
		require.NoError(err)
		require.Len(families, 1)
		assert.Equal(1.0, families[0].GetMetric()[0].GetGauge().GetValue())
	})
}
