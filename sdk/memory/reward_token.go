package memory

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/tetu-io/tetu-timelock/sdk"
	sdkerrors "github.com/tetu-io/tetu-timelock/sdk/errors"
)

var _ sdk.RewardMinter = (*RewardToken)(nil)

// EmissionSchedule caps the reward token supply. Each started period unlocks PerPeriod more
// tokens, up to HardCap.
type EmissionSchedule struct {
	Genesis   time.Time     `validate:"required"`
	Period    time.Duration `validate:"gt=0"`
	PerPeriod *big.Int      `validate:"required"`
	HardCap   *big.Int      `validate:"required"`
}

// RewardToken mints into a Ledger under an EmissionSchedule.
type RewardToken struct {
	address  common.Address
	ledger   *Ledger
	devFund  common.Address
	schedule EmissionSchedule
	clock    sdk.Clock

	mu          sync.Mutex
	totalSupply *big.Int
}

var validate = validator.New()

func NewRewardToken(
	address common.Address, ledger *Ledger, devFund common.Address, schedule EmissionSchedule, clock sdk.Clock,
) (*RewardToken, error) {
	if err := validate.Struct(schedule); err != nil {
		return nil, fmt.Errorf("invalid emission schedule: %w", err)
	}

	return &RewardToken{
		address:     address,
		ledger:      ledger,
		devFund:     devFund,
		schedule:    schedule,
		clock:       clock,
		totalSupply: new(big.Int),
	}, nil
}

func (r *RewardToken) Address() common.Address {
	return r.address
}

func (r *RewardToken) TotalSupply(context.Context) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return new(big.Int).Set(r.totalSupply), nil
}

func (r *RewardToken) MaxSupplyForCurrentPeriod(context.Context) (*big.Int, error) {
	return r.maxSupply(), nil
}

func (r *RewardToken) maxSupply() *big.Int {
	elapsed := r.clock.Now().Sub(r.schedule.Genesis)
	if elapsed < 0 {
		return new(big.Int)
	}

	periods := big.NewInt(int64(elapsed/r.schedule.Period) + 1)
	maxSupply := periods.Mul(periods, r.schedule.PerPeriod)
	if maxSupply.Cmp(r.schedule.HardCap) > 0 {
		return new(big.Int).Set(r.schedule.HardCap)
	}

	return maxSupply
}

func (r *RewardToken) DevFund(context.Context) (common.Address, error) {
	return r.devFund, nil
}

// Mint credits every allocation, or none when the new supply would exceed the current cap.
func (r *RewardToken) Mint(_ context.Context, allocations []sdk.Allocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := new(big.Int)
	for _, a := range allocations {
		if a.Amount.Sign() < 0 {
			return errors.New("negative mint amount")
		}
		if a.Amount.Sign() > 0 && a.To == (common.Address{}) {
			return errors.New("mint to the zero address")
		}
		sum.Add(sum, a.Amount)
	}

	newSupply := new(big.Int).Add(r.totalSupply, sum)
	if maxSupply := r.maxSupply(); newSupply.Cmp(maxSupply) > 0 {
		return sdkerrors.NewSupplyCapExceededError(maxSupply, newSupply)
	}

	for _, a := range allocations {
		if a.Amount.Sign() > 0 {
			r.ledger.Credit(r.address, a.To, a.Amount)
		}
	}
	r.totalSupply = newSupply

	return nil
}
