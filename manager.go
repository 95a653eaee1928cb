package restx

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/restx/future"
	"github.com/txix-open/restx/query"
	"github.com/txix-open/restx/transport"
)

// operation ties one in-flight transport handle to the continuations
// that settle its future.
type operation struct {
	handle    transport.Handle
	url       string
	endpoint  string
	startTime time.Time
	complete  func(body []byte)
	fail      func(err error)
	state     func() future.State
	failure   func() error
}

// Manager issues GET operations and drives every pending one toward a
// terminal future state on each Poll pass. Get and Poll may be called
// from different goroutines.
type Manager struct {
	timeout   time.Duration
	transport transport.Transport
	codec     Codec
	hook      Hook

	lock    sync.Mutex
	pending []*operation

	completed atomic.Uint64
	faulted   atomic.Uint64
}

func New(opts ...Option) *Manager {
	options := newOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Manager{
		timeout:   options.timeout,
		transport: options.transport,
		codec:     options.codec,
		hook:      options.hook,
	}
}

// Get fires a GET for endpoint with params appended and returns a pending
// future without blocking. The request starts at call time, the future is
// settled only from Poll. Opening the transport may fail synchronously.
func Get[T any](m *Manager, endpoint string, params *query.Params) (*future.Future[T], error) {
	url := query.BuildURL(endpoint, params)
	handle, err := m.transport.Open(url)
	if err != nil {
		return nil, errors.WithMessagef(err, "open transport for %s", url)
	}

	f := future.New[T]()
	op := &operation{
		handle:    handle,
		url:       url,
		endpoint:  endpoint,
		startTime: f.StartTime(),
		complete: func(body []byte) {
			var value T
			err := m.codec.Decode(body, &value)
			if err != nil {
				mustSettle(f.SetException(&DecodeError{
					Endpoint: endpoint,
					Body:     body,
					Err:      err,
				}))
				return
			}
			mustSettle(f.SetResult(value))
		},
		fail: func(err error) {
			mustSettle(f.SetException(err))
		},
		state:   f.State,
		failure: f.Err,
	}

	m.lock.Lock()
	m.pending = append(m.pending, op)
	m.lock.Unlock()

	return f, nil
}

// Post is explicitly not implemented.
func Post[T any](m *Manager, endpoint string, params *query.Params) (*future.Future[T], error) {
	return nil, ErrNotImplemented
}

// Poll visits every pending operation exactly once. An operation whose
// transport finished is settled with its decoded body or its transport error,
// an operation past the manager timeout is settled with a timeout error,
// everything else stays pending for the next tick. Iteration is in reverse
// index order so in-place removal does not skip entries.
func (m *Manager) Poll() {
	m.lock.Lock()
	defer m.lock.Unlock()

	now := time.Now()
	for i := len(m.pending) - 1; i >= 0; i-- {
		op := m.pending[i]
		switch {
		case op.handle.Finished():
			transportErr := op.handle.Err()
			if transportErr != nil {
				settle(op, func() {
					op.fail(&TransportError{URL: op.url, Err: transportErr})
				})
			} else {
				body := op.handle.Body()
				settle(op, func() {
					op.complete(body)
				})
			}
		case now.Sub(op.startTime) > m.timeout:
			settle(op, func() {
				op.fail(&TimeoutError{URL: op.url})
			})
		default:
			continue
		}

		op.handle.Release()
		m.pending = append(m.pending[:i], m.pending[i+1:]...)

		result := OpResult{
			URL:      op.url,
			Endpoint: op.endpoint,
			Outcome:  OutcomeFaulted,
			Elapsed:  now.Sub(op.startTime),
			Err:      op.failure(),
		}
		if op.state() == future.Completed {
			result.Outcome = OutcomeCompleted
			m.completed.Add(1)
		} else {
			m.faulted.Add(1)
		}
		m.hook(result)
	}
}

func (m *Manager) PendingCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return len(m.pending)
}

type Stats struct {
	Pending   int
	Completed uint64
	Faulted   uint64
}

func (m *Manager) Stats() Stats {
	return Stats{
		Pending:   m.PendingCount(),
		Completed: m.completed.Load(),
		Faulted:   m.faulted.Load(),
	}
}

// settle runs a continuation, funneling its panic into the operation's
// future so one misbehaving decode does not abort the whole pass.
func settle(op *operation, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if ok && errors.Is(err, future.ErrAlreadySettled) {
			// a double settle is a bug in the poll loop itself
			panic(r)
		}
		op.fail(errors.Errorf("settle panic: %v", r))
	}()
	fn()
}

// mustSettle aborts on a settle of an already terminal future,
// futures are contractually single-assignment.
func mustSettle(err error) {
	if err != nil {
		panic(err)
	}
}
