package metric

import (
	"github.com/txix-open/restx"
)

type Source interface {
	Stats() restx.Stats
}

// NewManagerCollector registers pending and settled series for a request
// manager and starts collection on the given cron cadence.
func NewManagerCollector(cronSpec string, source Source) *Collector {
	c := NewCollector(cronSpec, "restx")
	c.Add(Metric{
		Name:        "restx_pending_operations",
		Description: "Count of operations awaiting a terminal state",
		Collect: func() []Value {
			return []Value{ValueOf(source.Stats().Pending)}
		},
	})
	c.Add(Metric{
		Name:        "restx_settled_operations",
		Description: "Total operations driven to a terminal state",
		Labels:      []string{"outcome"},
		Collect: func() []Value {
			stats := source.Stats()
			return []Value{
				{Value: float64(stats.Completed), Labels: []string{string(restx.OutcomeCompleted)}},
				{Value: float64(stats.Faulted), Labels: []string{string(restx.OutcomeFaulted)}},
			}
		},
	})
	c.Start()
	return c
}
