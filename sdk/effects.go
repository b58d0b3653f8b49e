package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenLedger moves ERC20 balances between protocol contracts.
type TokenLedger interface {
	BalanceOf(ctx context.Context, token, holder common.Address) (*big.Int, error)
	Transfer(ctx context.Context, token, from, to common.Address, amount *big.Int) error
}

// ProxyUpgrader points upgradeable proxies at new implementations.
type ProxyUpgrader interface {
	Implementation(ctx context.Context, proxy common.Address) (common.Address, error)
	UpgradeProxy(ctx context.Context, proxy, implementation common.Address) error
}

// VaultManager owns vault lifecycle and strategy assignment.
type VaultManager interface {
	Strategy(ctx context.Context, vault common.Address) (common.Address, error)
	SetStrategy(ctx context.Context, vault, strategy common.Address) error
	IsActive(ctx context.Context, vault common.Address) (bool, error)
	SetActive(ctx context.Context, vault common.Address, active bool) error
	RewardTokens(ctx context.Context, vault common.Address) ([]common.Address, error)
}

// VaultSettings holds the reward parameters shared by all vaults.
type VaultSettings interface {
	RewardBoostDuration(ctx context.Context) (*big.Int, error)
	SetRewardBoostDuration(ctx context.Context, value *big.Int) error
	RewardRatioWithoutBoost(ctx context.Context) (*big.Int, error)
	SetRewardRatioWithoutBoost(ctx context.Context, value *big.Int) error
}

// Allocation is one recipient share of a mint.
type Allocation struct {
	To     common.Address
	Amount *big.Int
}

// RewardMinter mints the protocol reward token under its emission schedule.
type RewardMinter interface {
	TotalSupply(ctx context.Context) (*big.Int, error)
	MaxSupplyForCurrentPeriod(ctx context.Context) (*big.Int, error)
	// DevFund returns the treasury that receives the dev share of every mint.
	DevFund(ctx context.Context) (common.Address, error)
	// Mint applies all allocations or none of them.
	Mint(ctx context.Context, allocations []Allocation) error
}
