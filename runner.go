package restx

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/txix-open/isp-kit/log"
)

const (
	DefaultPollInterval = 100 * time.Millisecond
)

// Runner drives Manager.Poll on a fixed cadence. The shorter the interval,
// the tighter completion and timeout detection latency is.
type Runner struct {
	manager     *Manager
	interval    time.Duration
	logger      log.Logger
	closed      chan struct{}
	shouldClose atomic.Bool
}

func NewRunner(manager *Manager, interval time.Duration, logger log.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Runner{
		manager:  manager,
		interval: interval,
		logger:   logger,
		closed:   make(chan struct{}),
	}
}

// Run polls until ctx is done or Close is called.
func (r *Runner) Run(ctx context.Context) {
	ctx = log.ToContext(ctx, log.String("worker", "restx_poller"))
	r.logger.Debug(ctx, "start polling", log.String("interval", r.interval.String()))
	defer r.logger.Debug(ctx, "stop polling")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.closed:
			return
		case <-ticker.C:
			r.manager.Poll()
		}
	}
}

func (r *Runner) Close() {
	if r.shouldClose.Swap(true) {
		return
	}
	close(r.closed)
}
