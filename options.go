package timelock

import (
	"time"

	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/types"
)

// Option configures a Registry, Announcer or Controller. Each constructor reads only the
// fields it needs.
type Option func(*options)

type options struct {
	clock    sdk.Clock
	sink     sdk.EventSink
	auth     sdk.Authorizer
	resolver sdk.AddressResolver
	duration time.Duration
}

func newOptions(opts []Option) *options {
	o := &options{
		clock:    sdk.SystemClock{},
		sink:     sdk.NopEventSink{},
		duration: types.DefaultTimeLock.Duration,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithClock sets the time source used for scheduling and readiness checks.
func WithClock(clock sdk.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithEventSink sets the observer that receives announcement and execution events.
func WithEventSink(sink sdk.EventSink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithAuthorizer sets the governance-role check.
func WithAuthorizer(auth sdk.Authorizer) Option {
	return func(o *options) {
		o.auth = auth
	}
}

// WithAddressResolver sets the lookup used to fill announcement targets.
func WithAddressResolver(resolver sdk.AddressResolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

// WithDuration sets the initial timelock duration of a new registry.
func WithDuration(d time.Duration) Option {
	return func(o *options) {
		o.duration = d
	}
}
