package future

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrAlreadySettled = errors.New("future is already settled")

type State int

const (
	Pending State = iota
	Completed
	Faulted
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Future is a single-assignment result container. It is settled exactly once,
// by SetResult or SetException, and observed by polling State.
type Future[T any] struct {
	lock      sync.Mutex
	state     State
	result    T
	err       error
	startTime time.Time
}

func New[T any]() *Future[T] {
	return &Future[T]{
		startTime: time.Now(),
	}
}

// SetResult transitions the future to Completed.
// Returns ErrAlreadySettled if the future left Pending earlier.
func (f *Future[T]) SetResult(value T) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.state != Pending {
		return ErrAlreadySettled
	}
	f.state = Completed
	f.result = value
	return nil
}

// SetException transitions the future to Faulted.
// Returns ErrAlreadySettled if the future left Pending earlier.
func (f *Future[T]) SetException(err error) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.state != Pending {
		return ErrAlreadySettled
	}
	f.state = Faulted
	f.err = err
	return nil
}

func (f *Future[T]) State() State {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.state
}

// Result returns the settled value. While the future is not Completed
// it returns the zero value of T.
func (f *Future[T]) Result() T {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.result
}

// Err returns the settled error. While the future is not Faulted it returns nil.
func (f *Future[T]) Err() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.err
}

func (f *Future[T]) StartTime() time.Time {
	return f.startTime
}
