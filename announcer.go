package timelock

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/internal/utils/safecast"
	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/types"
)

var _ sdk.TimelockInspector = (*Announcer)(nil)

// Announcer validates and registers pending governance operations. Every announce call is
// governance-only and all-or-nothing.
type Announcer struct {
	registry *Registry
	auth     sdk.Authorizer
	resolver sdk.AddressResolver
	sink     sdk.EventSink
	clock    sdk.Clock
}

// NewAnnouncer creates an Announcer over registry. WithAuthorizer and WithAddressResolver are
// required.
func NewAnnouncer(registry *Registry, opts ...Option) (*Announcer, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}

	o := newOptions(opts)
	if o.auth == nil {
		return nil, errors.New("authorizer is required")
	}
	if o.resolver == nil {
		return nil, errors.New("address resolver is required")
	}

	return &Announcer{
		registry: registry,
		auth:     o.auth,
		resolver: o.resolver,
		sink:     o.sink,
		clock:    o.clock,
	}, nil
}

// AnnounceAddressChange schedules the replacement of a core controller address.
func (a *Announcer) AnnounceAddressChange(
	ctx context.Context, caller common.Address, op types.OpCode, newAddress common.Address,
) (types.TimeLockInfo, error) {
	return a.announceOne(ctx, caller, func() ([]types.Payload, error) {
		controller, err := a.resolve(ctx, types.ContractController)
		if err != nil {
			return nil, err
		}

		return []types.Payload{types.AddressChange{Op: op, Controller: controller, NewAddress: newAddress}}, nil
	})
}

// AnnounceRatioChange schedules a numerator/denominator change on the controller.
func (a *Announcer) AnnounceRatioChange(
	ctx context.Context, caller common.Address, op types.OpCode, numerator, denominator *big.Int,
) (types.TimeLockInfo, error) {
	return a.announceOne(ctx, caller, func() ([]types.Payload, error) {
		controller, err := a.resolve(ctx, types.ContractController)
		if err != nil {
			return nil, err
		}

		return []types.Payload{types.RatioChange{
			Op:          op,
			Controller:  controller,
			Numerator:   numerator,
			Denominator: denominator,
		}}, nil
	})
}

// AnnounceUintChange schedules a numeric parameter change. The announcement has no target.
func (a *Announcer) AnnounceUintChange(
	ctx context.Context, caller common.Address, op types.OpCode, value *big.Int,
) (types.TimeLockInfo, error) {
	return a.announceOne(ctx, caller, payloadsOf(types.UintChange{Op: op, Value: value}))
}

// AnnounceTokenMove schedules a token salvage. target is the recipient for controller moves,
// the strategy for strategy moves and the fund keeper for fund moves.
func (a *Announcer) AnnounceTokenMove(
	ctx context.Context, caller common.Address, op types.OpCode, target, token common.Address, amount *big.Int,
) (types.TimeLockInfo, error) {
	return a.announceOne(ctx, caller, payloadsOf(types.TokenMove{Op: op, To: target, Token: token, Amount: amount}))
}

// AnnounceMint schedules a reward token mint. A zero amount is only accepted together with
// mintAllAvailable, in which case the executed amount is computed at execution time.
func (a *Announcer) AnnounceMint(
	ctx context.Context,
	caller common.Address,
	amount *big.Int,
	distributor, fund common.Address,
	mintAllAvailable bool,
) (types.TimeLockInfo, error) {
	return a.announceOne(ctx, caller, func() ([]types.Payload, error) {
		mintHelper, err := a.resolve(ctx, types.ContractMintHelper)
		if err != nil {
			return nil, err
		}

		return []types.Payload{types.Mint{
			MintHelper:       mintHelper,
			Amount:           amount,
			Distributor:      distributor,
			Fund:             fund,
			MintAllAvailable: mintAllAvailable,
		}}, nil
	})
}

// AnnounceTetuProxyUpgradeBatch schedules one proxy upgrade per contract.
func (a *Announcer) AnnounceTetuProxyUpgradeBatch(
	ctx context.Context, caller common.Address, contracts, implementations []common.Address,
) ([]types.TimeLockInfo, error) {
	return a.announce(ctx, caller, proxyUpgrades(contracts, implementations))
}

// AnnounceStrategyUpgrades schedules one strategy swap per vault.
func (a *Announcer) AnnounceStrategyUpgrades(
	ctx context.Context, caller common.Address, vaults, strategies []common.Address,
) ([]types.TimeLockInfo, error) {
	return a.announce(ctx, caller, strategyUpgrades(vaults, strategies))
}

// AnnounceVaultStopBatch schedules the shutdown of each vault.
func (a *Announcer) AnnounceVaultStopBatch(
	ctx context.Context, caller common.Address, vaults []common.Address,
) ([]types.TimeLockInfo, error) {
	return a.announce(ctx, caller, vaultStops(vaults))
}

// CloseAnnounce cancels a live announcement without executing it. target is ignored for
// single-slot opcodes. Closing is allowed before and after the ready time.
func (a *Announcer) CloseAnnounce(
	ctx context.Context, caller common.Address, op types.OpCode, opHash common.Hash, target common.Address,
) error {
	key := types.NewKey(op, target)
	err := a.registry.Update(func(tx *Tx) error {
		if err := authorize(ctx, a.auth, caller); err != nil {
			return err
		}

		info, ok := tx.Live(key)
		if !ok || info.OpHash != opHash {
			return NewAnnouncementNotFoundError(key, opHash)
		}

		return tx.Clear(key)
	})
	if err != nil {
		return err
	}

	sdk.LoggerFrom(ctx).Infof("closed announcement %s for %s", opHash.Hex(), key)
	emit(ctx, a.sink, types.AnnouncementClosed{OpCode: op, OpHash: opHash})

	return nil
}

// TimeLockIndexes returns the live index of a single-slot opcode, or 0.
func (a *Announcer) TimeLockIndexes(_ context.Context, op types.OpCode) (*big.Int, error) {
	var idx uint64
	err := a.registry.View(func(tx *Tx) error {
		idx = tx.Index(types.Key{OpCode: op})
		return nil
	})

	return new(big.Int).SetUint64(idx), err
}

// MultiTimeLockIndexes returns the live index of a per-target opcode for target, or 0.
func (a *Announcer) MultiTimeLockIndexes(_ context.Context, op types.OpCode, target common.Address) (*big.Int, error) {
	var idx uint64
	err := a.registry.View(func(tx *Tx) error {
		if op.MultiTarget() {
			idx = tx.Index(types.NewKey(op, target))
		}

		return nil
	})

	return new(big.Int).SetUint64(idx), err
}

// TimeLockInfo returns the record at index, live or not.
func (a *Announcer) TimeLockInfo(_ context.Context, index *big.Int) (types.TimeLockInfo, error) {
	idx, err := safecast.BigToUint64(index)
	if err != nil {
		return types.TimeLockInfo{}, NewIndexOutOfRangeError(index)
	}

	var info types.TimeLockInfo
	err = a.registry.View(func(tx *Tx) error {
		info, err = tx.Get(idx)
		return err
	})

	return info, err
}

// TimeLockSchedule returns the ready time of a live announcement, or 0.
func (a *Announcer) TimeLockSchedule(_ context.Context, opHash common.Hash) (*big.Int, error) {
	var readyAt uint64
	err := a.registry.View(func(tx *Tx) error {
		readyAt = tx.ScheduleOf(opHash)
		return nil
	})

	return new(big.Int).SetUint64(readyAt), err
}

// TimeLock returns the delay applied to new announcements.
func (a *Announcer) TimeLock(_ context.Context) (time.Duration, error) {
	var d time.Duration
	err := a.registry.View(func(tx *Tx) error {
		d = tx.Duration()
		return nil
	})

	return d, err
}

// TimeLockInfosLength returns the registry log length, including the placeholder record.
func (a *Announcer) TimeLockInfosLength(_ context.Context) (*big.Int, error) {
	var n uint64
	err := a.registry.View(func(tx *Tx) error {
		n = tx.Len()
		return nil
	})

	return new(big.Int).SetUint64(n), err
}

func (a *Announcer) announceOne(ctx context.Context, caller common.Address, build payloadsFunc) (types.TimeLockInfo, error) {
	infos, err := a.announce(ctx, caller, build)
	if err != nil {
		return types.TimeLockInfo{}, err
	}

	return infos[0], nil
}

// announce authorizes caller, then builds, validates and registers the payloads in one
// registry transaction.
func (a *Announcer) announce(ctx context.Context, caller common.Address, build payloadsFunc) ([]types.TimeLockInfo, error) {
	now, err := unixNow(a.clock)
	if err != nil {
		return nil, err
	}

	var infos []types.TimeLockInfo
	err = a.registry.Update(func(tx *Tx) error {
		if err := authorize(ctx, a.auth, caller); err != nil {
			return err
		}

		payloads, err := build()
		if err != nil {
			return err
		}
		for _, p := range payloads {
			if p.OpCode() == types.OpZeroPlaceholder {
				return ErrZeroPlaceholder
			}
			if err := p.Validate(); err != nil {
				return NewInvalidPayloadError(p.OpCode(), err)
			}
		}

		infos = make([]types.TimeLockInfo, 0, len(payloads))
		readyAt := now + types.NewDuration(tx.Duration()).Uint64Seconds()
		for _, p := range payloads {
			info, err := types.NewTimeLockInfo(p, now, readyAt)
			if err != nil {
				return fmt.Errorf("failed to hash %s payload: %w", p.OpCode(), err)
			}
			if _, err = tx.Register(info); err != nil {
				return err
			}
			infos = append(infos, info)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	lggr := sdk.LoggerFrom(ctx)
	for _, info := range infos {
		lggr.Infof("announced %s opHash %s ready at %d", info.Key(), info.OpHash.Hex(), info.ReadyAt)
		emit(ctx, a.sink, types.AnnouncementSubmitted{
			OpCode:  info.OpCode,
			Target:  info.Target,
			OpHash:  info.OpHash,
			ReadyAt: info.ReadyAt,
		})
	}

	return infos, nil
}

// payloadsOf returns a payloadsFunc yielding payloads as given.
func payloadsOf(payloads ...types.Payload) payloadsFunc {
	return func() ([]types.Payload, error) {
		return payloads, nil
	}
}

func (a *Announcer) resolve(ctx context.Context, ct types.ContractType) (common.Address, error) {
	addr, err := a.resolver.Address(ctx, ct)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to resolve %s address: %w", ct, err)
	}

	return addr, nil
}

// checkBatch rejects empty batches, mismatched argument lengths and repeated targets.
func checkBatch(op types.OpCode, targets []common.Address, n int) error {
	if len(targets) == 0 {
		return NewInvalidPayloadError(op, errors.New("empty batch"))
	}
	if len(targets) != n {
		return NewInvalidPayloadError(op, fmt.Errorf("wrong arrays: %d targets, %d values", len(targets), n))
	}

	seen := make(map[common.Address]struct{}, len(targets))
	for _, target := range targets {
		if _, ok := seen[target]; ok {
			return NewInvalidPayloadError(op, fmt.Errorf("duplicate target %s", target.Hex()))
		}
		seen[target] = struct{}{}
	}

	return nil
}

func authorize(ctx context.Context, auth sdk.Authorizer, caller common.Address) error {
	ok, err := auth.IsGovernance(ctx, caller)
	if err != nil {
		return fmt.Errorf("failed to check governance role: %w", err)
	}
	if !ok {
		return NewUnauthorizedError(caller)
	}

	return nil
}

func unixNow(clock sdk.Clock) (uint64, error) {
	now, err := safecast.Int64ToUint64(clock.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("invalid clock time: %w", err)
	}

	return now, nil
}
