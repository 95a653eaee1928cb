package metric

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/txix-open/isp-kit/metrics"
)

const (
	EverySecond = "* * * * * *"
)

type Value struct {
	Labels []string
	Value  float64
}

func ValueOf(value int, labels ...string) Value {
	return Value{
		Value:  float64(value),
		Labels: labels,
	}
}

type Metric struct {
	Name        string
	Description string
	Labels      []string
	Collect     func() []Value
}

type gaugeState struct {
	gauge   *prometheus.GaugeVec
	collect func() []Value
}

// Collector publishes registered metrics on a cron cadence.
// All series carry a "module" label.
type Collector struct {
	sched  cron.Schedule
	module string

	lock   sync.Mutex
	gauges []gaugeState

	closed  chan struct{}
	started atomic.Bool
	stopped atomic.Bool
}

func NewCollector(cronSpec string, module string) *Collector {
	sched, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(cronSpec)
	if err != nil {
		panic(errors.WithMessagef(err, "parse %s", cronSpec))
	}
	return &Collector{
		sched:  sched,
		module: module,
		closed: make(chan struct{}),
	}
}

func (c *Collector) Add(m Metric) *Collector {
	gauge := metrics.GetOrRegister(
		metrics.DefaultRegistry,
		prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: m.Name,
			Help: m.Description,
		}, append(m.Labels, "module")),
	)

	c.lock.Lock()
	defer c.lock.Unlock()
	c.gauges = append(c.gauges, gaugeState{
		gauge:   gauge,
		collect: m.Collect,
	})
	return c
}

func (c *Collector) Start() {
	if c.started.Swap(true) {
		return
	}
	go c.run()
}

func (c *Collector) run() {
	for {
		c.lock.Lock()
		gauges := slices.Clone(c.gauges)
		c.lock.Unlock()

		for _, state := range gauges {
			for _, value := range state.collect() {
				state.gauge.WithLabelValues(append(value.Labels, c.module)...).Set(value.Value)
			}
		}

		now := time.Now()
		nextRun := c.sched.Next(now)
		select {
		case <-time.After(nextRun.Sub(now)):
		case <-c.closed:
			return
		}
	}
}

func (c *Collector) Close() error {
	if c.stopped.Swap(true) {
		return nil
	}
	close(c.closed)
	return nil
}
