package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/internal/utils/safecast"
	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/types"
)

var _ sdk.TimelockInspector = (*Inspector)(nil)

// onchainTimeLockInfo mirrors the IAnnouncer.TimeLockInfo struct.
type onchainTimeLockInfo struct {
	OpCode    uint8
	OpHash    [32]byte
	Target    common.Address
	AdrValues []common.Address
	NumValues []*big.Int
}

// Inspector is a TimelockInspector implementation reading the state of a deployed Announcer.
type Inspector struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewInspector creates a new Inspector for the Announcer at address.
func NewInspector(address common.Address, caller bind.ContractCaller) *Inspector {
	return &Inspector{
		address:  address,
		contract: bind.NewBoundContract(address, announcerABI, caller, nil, nil),
	}
}

// Address returns the address of the inspected Announcer.
func (i *Inspector) Address() common.Address {
	return i.address
}

// TimeLockIndexes returns the live index of a single-slot opcode, or 0.
func (i *Inspector) TimeLockIndexes(ctx context.Context, op types.OpCode) (*big.Int, error) {
	return i.callBig(ctx, "timeLockIndexes", uint8(op))
}

// MultiTimeLockIndexes returns the live index of a multi-target opcode for target, or 0.
func (i *Inspector) MultiTimeLockIndexes(ctx context.Context, op types.OpCode, target common.Address) (*big.Int, error) {
	return i.callBig(ctx, "multiTimeLockIndexes", uint8(op), target)
}

// TimeLockInfo returns the record at index. The contract does not store the announcement time,
// so ScheduledAt is always 0 and ReadyAt is only set while the announcement is live.
func (i *Inspector) TimeLockInfo(ctx context.Context, index *big.Int) (types.TimeLockInfo, error) {
	if index == nil || index.Sign() < 0 {
		return types.TimeLockInfo{}, errors.New("index must be a non-negative integer")
	}

	var out []any
	if err := i.contract.Call(&bind.CallOpts{Context: ctx}, &out, "timeLockInfo", index); err != nil {
		return types.TimeLockInfo{}, fmt.Errorf("failed to call timeLockInfo(%s): %w", index, decodeRevert(err))
	}
	raw := *abi.ConvertType(out[0], new(onchainTimeLockInfo)).(*onchainTimeLockInfo)

	info := types.TimeLockInfo{
		OpCode:    types.OpCode(raw.OpCode),
		OpHash:    raw.OpHash,
		Target:    raw.Target,
		AdrValues: raw.AdrValues,
		NumValues: raw.NumValues,
	}
	if !info.OpCode.Valid() {
		return types.TimeLockInfo{}, fmt.Errorf("announcer returned unknown opcode %d", raw.OpCode)
	}

	schedule, err := i.TimeLockSchedule(ctx, info.OpHash)
	if err != nil {
		return types.TimeLockInfo{}, err
	}
	if info.ReadyAt, err = safecast.BigToUint64(schedule); err != nil {
		return types.TimeLockInfo{}, err
	}

	return info, nil
}

// TimeLockSchedule returns the ready time of a live opHash, or 0.
func (i *Inspector) TimeLockSchedule(ctx context.Context, opHash common.Hash) (*big.Int, error) {
	return i.callBig(ctx, "timeLockSchedule", [32]byte(opHash))
}

// TimeLock returns the delay applied to new announcements.
func (i *Inspector) TimeLock(ctx context.Context) (time.Duration, error) {
	seconds, err := i.callBig(ctx, "timeLock")
	if err != nil {
		return 0, err
	}

	s, err := safecast.BigToUint64(seconds)
	if err != nil {
		return 0, err
	}
	d, err := types.DurationFromSeconds(s)
	if err != nil {
		return 0, err
	}

	return d.Duration, nil
}

// TimeLockInfosLength returns the length of the announcement log, including the placeholder.
func (i *Inspector) TimeLockInfosLength(ctx context.Context) (*big.Int, error) {
	return i.callBig(ctx, "timeLockInfosLength")
}

func (i *Inspector) callBig(ctx context.Context, method string, params ...any) (*big.Int, error) {
	var out []any
	if err := i.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, decodeRevert(err))
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
