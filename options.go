package restx

import (
	"time"

	"github.com/txix-open/restx/codec"
	"github.com/txix-open/restx/transport"
)

const (
	DefaultTimeout = 30 * time.Second
)

// OpResult describes one settled operation, delivered to the manager hook.
type OpResult struct {
	URL      string
	Endpoint string
	Outcome  Outcome
	Elapsed  time.Duration
	Err      error
}

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFaulted   Outcome = "faulted"
)

// Hook is called synchronously from Poll after each terminal transition.
// It must not call back into the manager.
type Hook func(result OpResult)

// Codec decodes raw response bodies into typed values.
type Codec interface {
	Decode(data []byte, valuePtr any) error
}

type options struct {
	timeout   time.Duration
	transport transport.Transport
	codec     Codec
	hook      Hook
}

func newOptions() *options {
	return &options{
		timeout:   DefaultTimeout,
		transport: transport.NewHTTP(nil),
		codec:     codec.New(),
		hook: func(result OpResult) {

		},
	}
}

type Option func(o *options)

// Timeout sets the deadline applied uniformly to all requests of one manager.
func Timeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithTransport(t transport.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

func WithHook(hook Hook) Option {
	return func(o *options) {
		o.hook = hook
	}
}
