package memory

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/sdk"
	sdkerrors "github.com/tetu-io/tetu-timelock/sdk/errors"
)

var (
	_ sdk.VaultManager  = (*Vaults)(nil)
	_ sdk.VaultSettings = (*Vaults)(nil)
)

type vault struct {
	strategy     common.Address
	active       bool
	rewardTokens []common.Address
}

// Vaults holds vault lifecycle state and the shared reward settings of the vault controller.
type Vaults struct {
	mu                      sync.RWMutex
	vaults                  map[common.Address]*vault
	rewardBoostDuration     *big.Int
	rewardRatioWithoutBoost *big.Int
}

func NewVaults() *Vaults {
	return &Vaults{
		vaults:                  make(map[common.Address]*vault),
		rewardBoostDuration:     new(big.Int),
		rewardRatioWithoutBoost: new(big.Int),
	}
}

// Add registers an active vault.
func (v *Vaults) Add(addr, strategy common.Address, rewardTokens ...common.Address) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.vaults[addr] = &vault{
		strategy:     strategy,
		active:       true,
		rewardTokens: append([]common.Address{}, rewardTokens...),
	}
}

func (v *Vaults) get(addr common.Address) (*vault, error) {
	vlt, ok := v.vaults[addr]
	if !ok {
		return nil, sdkerrors.NewUnknownVaultError(addr)
	}

	return vlt, nil
}

func (v *Vaults) Strategy(_ context.Context, addr common.Address) (common.Address, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	vlt, err := v.get(addr)
	if err != nil {
		return common.Address{}, err
	}

	return vlt.strategy, nil
}

func (v *Vaults) SetStrategy(_ context.Context, addr, strategy common.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	vlt, err := v.get(addr)
	if err != nil {
		return err
	}
	vlt.strategy = strategy

	return nil
}

func (v *Vaults) IsActive(_ context.Context, addr common.Address) (bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	vlt, err := v.get(addr)
	if err != nil {
		return false, err
	}

	return vlt.active, nil
}

func (v *Vaults) SetActive(_ context.Context, addr common.Address, active bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	vlt, err := v.get(addr)
	if err != nil {
		return err
	}
	vlt.active = active

	return nil
}

func (v *Vaults) RewardTokens(_ context.Context, addr common.Address) ([]common.Address, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	vlt, err := v.get(addr)
	if err != nil {
		return nil, err
	}

	return append([]common.Address{}, vlt.rewardTokens...), nil
}

func (v *Vaults) RewardBoostDuration(context.Context) (*big.Int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return new(big.Int).Set(v.rewardBoostDuration), nil
}

func (v *Vaults) SetRewardBoostDuration(_ context.Context, value *big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rewardBoostDuration = new(big.Int).Set(value)

	return nil
}

func (v *Vaults) RewardRatioWithoutBoost(context.Context) (*big.Int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return new(big.Int).Set(v.rewardRatioWithoutBoost), nil
}

func (v *Vaults) SetRewardRatioWithoutBoost(_ context.Context, value *big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rewardRatioWithoutBoost = new(big.Int).Set(value)

	return nil
}
