package metric_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/txix-open/restx"
	"github.com/txix-open/restx/metric"
)

func TestCollector(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	collected := atomic.Int64{}
	c := metric.NewCollector(metric.EverySecond, "test").Add(metric.Metric{
		Name:        "restx_test_metric",
		Description: "some test metric",
		Labels:      []string{"endpoint"},
		Collect: func() []metric.Value {
			collected.Add(1)
			return []metric.Value{metric.ValueOf(3, "search")}
		},
	})
	c.Start()
	t.Cleanup(func() {
		_ = c.Close()
	})

	time.Sleep(3 * time.Second)
	require.GreaterOrEqual(collected.Load(), int64(2))

	require.NoError(c.Close())
	require.NoError(c.Close())
}

type statsSource struct {
	stats restx.Stats
}

func (s statsSource) Stats() restx.Stats {
	return s.stats
}

func TestManagerCollector(t *testing.T) {
	t.Parallel()

	source := statsSource{stats: restx.Stats{Pending: 1, Completed: 2, Faulted: 3}}
	c := metric.NewManagerCollector(metric.EverySecond, source)
	t.Cleanup(func() {
		_ = c.Close()
	})
	time.Sleep(2 * time.Second)
}
