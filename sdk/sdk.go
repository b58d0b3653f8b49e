package sdk

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/types"
)

// Authorizer decides whether a caller holds the governance role.
type Authorizer interface {
	IsGovernance(ctx context.Context, caller common.Address) (bool, error)
}

// AddressResolver looks up the live address of a core protocol contract.
type AddressResolver interface {
	Address(ctx context.Context, ct types.ContractType) (common.Address, error)
}

// EventSink receives every event emitted by the announcer and controller.
type EventSink interface {
	Emit(ctx context.Context, event types.Event) error
}

// Clock returns the current ledger time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// NopEventSink drops every event.
type NopEventSink struct{}

func (NopEventSink) Emit(context.Context, types.Event) error {
	return nil
}
