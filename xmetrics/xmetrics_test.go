package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounter(t *testing.T) {
	t.Run("Unregistered", func(t *testing.T) {
		c := NewCounter(nil, prometheus.CounterOpts{Name: "test_counter"})
		require.NotNil(t, c)
		c.Add(1.0)
	})

	t.Run("Registered", func(t *testing.T) {
		var (
			require  = require.New(t)
			assert   = assert.New(t)
			registry = prometheus.NewRegistry()
			c        = NewCounter(registry, prometheus.CounterOpts{Name: "test_counter", Help: "a test counter"})
		)

		require.NotNil(c)
		c.Add(2.0)

		families, err := registry.Gather()
		require.NoError(err)
		require.Len(families, 1)
		assert.Equal("test_counter", families[0].GetName())
		assert.Equal(2.0, families[0].GetMetric()[0].GetCounter().GetValue())
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		NewCounter(registry, prometheus.CounterOpts{Name: "duplicate"})
		assert.Panics(t, func() {
			NewCounter(registry, prometheus.CounterOpts{Name: "duplicate"})
		})
	})
}

func TestNewGauge(t *testing.T) {
	var (
		require  = require.New(t)
		assert   = assert.New(t)
		registry = prometheus.NewRegistry()
		g        = NewGauge(registry, prometheus.GaugeOpts{Name: "test_gauge", Help: "a test gauge"})
	)

	require.NotNil(g)
	g.Set(10.0)
	g.Add(-3.0)

	families, err := registry.Gather()
	require.NoError(err)
	require.Len(families, 1)
	assert.Equal(7.0, families[0].GetMetric()[0].GetGauge().GetValue())
}

func TestInterfaces(t *testing.T) {
	var (
		c = NewCounter(nil, prometheus.CounterOpts{Name: "iface_counter"})
		g = NewGauge(nil, prometheus.GaugeOpts{Name: "iface_gauge"})
	)

	assert.Implements(t, (*Adder)(nil), c)
	assert.Implements(t, (*AddSetter)(nil), g)
}
