package timelock

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/tetu-io/tetu-timelock/internal/utils/safecast"
	"github.com/tetu-io/tetu-timelock/sdk"
	sdkerrors "github.com/tetu-io/tetu-timelock/sdk/errors"
	"github.com/tetu-io/tetu-timelock/types"
)

var (
	_ sdk.Authorizer      = (*Controller)(nil)
	_ sdk.AddressResolver = (*Controller)(nil)
)

var validate = validator.New()

// ControllerConfig seeds the controller state. Address-change slots left at the zero address
// can later be set once without a timelock.
type ControllerConfig struct {
	Address            common.Address `json:"address" validate:"required"`
	Governance         common.Address `json:"governance" validate:"required"`
	Dao                common.Address `json:"dao"`
	FeeRewardForwarder common.Address `json:"feeRewardForwarder"`
	Bookkeeper         common.Address `json:"bookkeeper"`
	MintHelper         common.Address `json:"mintHelper"`
	RewardToken        common.Address `json:"rewardToken"`
	FundToken          common.Address `json:"fundToken"`
	PsVault            common.Address `json:"psVault"`
	Fund               common.Address `json:"fund"`
	Announcer          common.Address `json:"announcer"`
	VaultController    common.Address `json:"vaultController"`
	Distributor        common.Address `json:"distributor"`

	// Ratios default to 1000/1000 for the PS vault and 100/1000 for the fund.
	PsNumerator     *big.Int `json:"psNumerator"`
	PsDenominator   *big.Int `json:"psDenominator"`
	FundNumerator   *big.Int `json:"fundNumerator"`
	FundDenominator *big.Int `json:"fundDenominator"`
}

// Backends are the protocol contracts the controller mutates when applying an operation.
type Backends struct {
	Tokens        sdk.TokenLedger   `validate:"required"`
	Proxies       sdk.ProxyUpgrader `validate:"required"`
	Vaults        sdk.VaultManager  `validate:"required"`
	VaultSettings sdk.VaultSettings `validate:"required"`
	Minter        sdk.RewardMinter  `validate:"required"`
}

// Controller executes announced operations once their timelock elapsed and owns the core
// protocol addresses. It is the default governance Authorizer and AddressResolver.
type Controller struct {
	registry *Registry
	backends Backends
	address  common.Address
	auth     sdk.Authorizer
	sink     sdk.EventSink
	clock    sdk.Clock

	// state is only written inside a registry Update, so the registry lock orders all
	// controller mutations.
	mu    sync.RWMutex
	state controllerState
}

type controllerState struct {
	addresses   map[types.OpCode]common.Address
	distributor common.Address
	psNum       *big.Int
	psDen       *big.Int
	fundNum     *big.Int
	fundDen     *big.Int
}

// NewController creates a Controller executing operations registered in registry.
func NewController(registry *Registry, cfg ControllerConfig, backends Backends, opts ...Option) (*Controller, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid controller config: %w", err)
	}
	if err := validate.Struct(backends); err != nil {
		return nil, fmt.Errorf("invalid controller backends: %w", err)
	}

	o := newOptions(opts)
	c := &Controller{
		registry: registry,
		backends: backends,
		address:  cfg.Address,
		auth:     o.auth,
		sink:     o.sink,
		clock:    o.clock,
		state: controllerState{
			addresses: map[types.OpCode]common.Address{
				types.OpGovernance:         cfg.Governance,
				types.OpDao:                cfg.Dao,
				types.OpFeeRewardForwarder: cfg.FeeRewardForwarder,
				types.OpBookkeeper:         cfg.Bookkeeper,
				types.OpMintHelper:         cfg.MintHelper,
				types.OpRewardToken:        cfg.RewardToken,
				types.OpFundToken:          cfg.FundToken,
				types.OpPsVault:            cfg.PsVault,
				types.OpFund:               cfg.Fund,
				types.OpAnnouncer:          cfg.Announcer,
				types.OpVaultController:    cfg.VaultController,
			},
			distributor: cfg.Distributor,
			psNum:       defaultBig(cfg.PsNumerator, 1000),
			psDen:       defaultBig(cfg.PsDenominator, 1000),
			fundNum:     defaultBig(cfg.FundNumerator, 100),
			fundDen:     defaultBig(cfg.FundDenominator, 1000),
		},
	}
	if c.auth == nil {
		c.auth = c
	}

	return c, nil
}

// IsGovernance reports whether caller is the current governance address.
func (c *Controller) IsGovernance(_ context.Context, caller common.Address) (bool, error) {
	gov := c.Governance()

	return gov != (common.Address{}) && caller == gov, nil
}

// Address resolves the live address of a core contract.
func (c *Controller) Address(_ context.Context, ct types.ContractType) (common.Address, error) {
	var addr common.Address
	switch ct {
	case types.ContractController:
		return c.address, nil
	case types.ContractNotifyHelper:
		addr = c.Distributor()
	case types.ContractAnnouncer:
		addr = c.AddressOf(types.OpAnnouncer)
	case types.ContractMintHelper:
		addr = c.AddressOf(types.OpMintHelper)
	case types.ContractRewardToken:
		addr = c.AddressOf(types.OpRewardToken)
	case types.ContractFundKeeper:
		addr = c.AddressOf(types.OpFund)
	case types.ContractBookkeeper:
		addr = c.AddressOf(types.OpBookkeeper)
	case types.ContractFeeRewardForwarder:
		addr = c.AddressOf(types.OpFeeRewardForwarder)
	case types.ContractPsVault:
		addr = c.AddressOf(types.OpPsVault)
	case types.ContractVaultController:
		addr = c.AddressOf(types.OpVaultController)
	}
	if addr == (common.Address{}) {
		return common.Address{}, sdkerrors.NewUnknownContractError(ct)
	}

	return addr, nil
}

// Governance returns the current governance address.
func (c *Controller) Governance() common.Address {
	return c.AddressOf(types.OpGovernance)
}

// AddressOf returns the value of an address-change slot.
func (c *Controller) AddressOf(op types.OpCode) common.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state.addresses[op]
}

// Distributor returns the address receiving the vault share of mints.
func (c *Controller) Distributor() common.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state.distributor
}

// PsRatio returns the PS vault numerator and denominator.
func (c *Controller) PsRatio() (*big.Int, *big.Int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return new(big.Int).Set(c.state.psNum), new(big.Int).Set(c.state.psDen)
}

// FundRatio returns the fund numerator and denominator.
func (c *Controller) FundRatio() (*big.Int, *big.Int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return new(big.Int).Set(c.state.fundNum), new(big.Int).Set(c.state.fundDen)
}

// SetDistributor replaces the mint distributor. It is governance-only and not timelocked;
// pending mints bind to the distributor at execution time.
func (c *Controller) SetDistributor(ctx context.Context, caller, distributor common.Address) error {
	return c.registry.Update(func(*Tx) error {
		if err := authorize(ctx, c.auth, caller); err != nil {
			return err
		}
		if distributor == (common.Address{}) {
			return NewInvalidPayloadError(types.OpMint, errors.New("zero distributor"))
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.distributor = distributor

		return nil
	})
}

func (c *Controller) SetGovernance(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpGovernance, addr)
}

func (c *Controller) SetDao(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpDao, addr)
}

func (c *Controller) SetFeeRewardForwarder(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpFeeRewardForwarder, addr)
}

func (c *Controller) SetBookkeeper(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpBookkeeper, addr)
}

func (c *Controller) SetMintHelper(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpMintHelper, addr)
}

func (c *Controller) SetRewardToken(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpRewardToken, addr)
}

func (c *Controller) SetFundToken(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpFundToken, addr)
}

func (c *Controller) SetPsVault(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpPsVault, addr)
}

func (c *Controller) SetFund(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpFund, addr)
}

func (c *Controller) SetAnnouncer(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpAnnouncer, addr)
}

func (c *Controller) SetVaultController(ctx context.Context, caller, addr common.Address) error {
	return c.ExecuteAddressChange(ctx, caller, types.OpVaultController, addr)
}

// ExecuteAddressChange applies an announced address change. A slot whose current value is the
// zero address is set immediately without an announcement.
func (c *Controller) ExecuteAddressChange(ctx context.Context, caller common.Address, op types.OpCode, addr common.Address) error {
	p := types.AddressChange{Op: op, Controller: c.address, NewAddress: addr}
	apply := func(context.Context, *Tx) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.addresses[op] = addr

		return nil
	}

	return c.executeUnless(ctx, caller, validated(p), apply, func() bool {
		return c.AddressOf(op) == (common.Address{})
	})
}

// SetPSNumeratorDenominator applies an announced PS ratio change.
func (c *Controller) SetPSNumeratorDenominator(ctx context.Context, caller common.Address, numerator, denominator *big.Int) error {
	return c.executeRatio(ctx, caller, types.OpPsRatio, numerator, denominator)
}

// SetFundNumeratorDenominator applies an announced fund ratio change.
func (c *Controller) SetFundNumeratorDenominator(ctx context.Context, caller common.Address, numerator, denominator *big.Int) error {
	return c.executeRatio(ctx, caller, types.OpFundRatio, numerator, denominator)
}

func (c *Controller) executeRatio(ctx context.Context, caller common.Address, op types.OpCode, numerator, denominator *big.Int) error {
	p := types.RatioChange{Op: op, Controller: c.address, Numerator: numerator, Denominator: denominator}

	return c.execute(ctx, caller, validated(p), func(context.Context, *Tx) error {
		num, den := new(big.Int).Set(numerator), new(big.Int).Set(denominator)

		c.mu.Lock()
		defer c.mu.Unlock()
		if op == types.OpPsRatio {
			c.state.psNum, c.state.psDen = num, den
		} else {
			c.state.fundNum, c.state.fundDen = num, den
		}

		return nil
	})
}

// ControllerTokenMove sends tokens held by the controller to recipient.
func (c *Controller) ControllerTokenMove(
	ctx context.Context, caller, recipient, token common.Address, amount *big.Int,
) error {
	return c.executeTokenMove(ctx, caller, types.OpControllerTokenMove, recipient, token, amount,
		func() (common.Address, common.Address) { return c.address, recipient })
}

// StrategyTokenMove salvages tokens from a strategy to the governance address.
func (c *Controller) StrategyTokenMove(
	ctx context.Context, caller, strategy, token common.Address, amount *big.Int,
) error {
	return c.executeTokenMove(ctx, caller, types.OpStrategyTokenMove, strategy, token, amount,
		func() (common.Address, common.Address) { return strategy, c.Governance() })
}

// FundKeeperTokenMove returns tokens from the fund keeper to the controller.
func (c *Controller) FundKeeperTokenMove(
	ctx context.Context, caller, fund, token common.Address, amount *big.Int,
) error {
	return c.executeTokenMove(ctx, caller, types.OpFundTokenMove, fund, token, amount,
		func() (common.Address, common.Address) { return fund, c.address })
}

func (c *Controller) executeTokenMove(
	ctx context.Context,
	caller common.Address,
	op types.OpCode,
	target, token common.Address,
	amount *big.Int,
	route func() (from, to common.Address),
) error {
	p := types.TokenMove{Op: op, To: target, Token: token, Amount: amount}

	return c.execute(ctx, caller, validated(p), func(ctx context.Context, _ *Tx) error {
		from, to := route()
		if err := c.backends.Tokens.Transfer(ctx, token, from, to, amount); err != nil {
			return fmt.Errorf("failed to move %s from %s to %s: %w", token.Hex(), from.Hex(), to.Hex(), err)
		}

		return nil
	})
}

// UpgradeTetuProxyBatch points each proxy at its announced implementation. Either all proxies
// are upgraded or none.
func (c *Controller) UpgradeTetuProxyBatch(ctx context.Context, caller common.Address, proxies, implementations []common.Address) error {
	return c.execute(ctx, caller, proxyUpgrades(proxies, implementations), func(ctx context.Context, _ *Tx) (err error) {
		var undo undoStack
		defer func() {
			if err != nil {
				undo.run(ctx)
			}
		}()

		for i, proxy := range proxies {
			proxy := proxy
			prev, err := c.backends.Proxies.Implementation(ctx, proxy)
			if err != nil {
				return fmt.Errorf("failed to read implementation of %s: %w", proxy.Hex(), err)
			}
			if err = c.backends.Proxies.UpgradeProxy(ctx, proxy, implementations[i]); err != nil {
				return fmt.Errorf("failed to upgrade %s: %w", proxy.Hex(), err)
			}
			undo.push(func(ctx context.Context) error {
				return c.backends.Proxies.UpgradeProxy(ctx, proxy, prev)
			})
		}

		return nil
	})
}

// SetVaultStrategyBatch swaps the strategy of each vault. Either all vaults are updated or none.
func (c *Controller) SetVaultStrategyBatch(ctx context.Context, caller common.Address, vaults, strategies []common.Address) error {
	return c.execute(ctx, caller, strategyUpgrades(vaults, strategies), func(ctx context.Context, _ *Tx) (err error) {
		var undo undoStack
		defer func() {
			if err != nil {
				undo.run(ctx)
			}
		}()

		for i, vault := range vaults {
			vault := vault
			prev, err := c.backends.Vaults.Strategy(ctx, vault)
			if err != nil {
				return fmt.Errorf("failed to read strategy of %s: %w", vault.Hex(), err)
			}
			if err = c.backends.Vaults.SetStrategy(ctx, vault, strategies[i]); err != nil {
				return fmt.Errorf("failed to set strategy of %s: %w", vault.Hex(), err)
			}
			undo.push(func(ctx context.Context) error {
				return c.backends.Vaults.SetStrategy(ctx, vault, prev)
			})
		}

		return nil
	})
}

// StopVaultsBatch deactivates each vault and moves its reward token balances to the controller.
func (c *Controller) StopVaultsBatch(ctx context.Context, caller common.Address, vaults []common.Address) error {
	return c.execute(ctx, caller, vaultStops(vaults), func(ctx context.Context, _ *Tx) (err error) {
		var undo undoStack
		defer func() {
			if err != nil {
				undo.run(ctx)
			}
		}()

		for _, vault := range vaults {
			if err = c.stopVault(ctx, vault, &undo); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Controller) stopVault(ctx context.Context, vault common.Address, undo *undoStack) error {
	if err := c.backends.Vaults.SetActive(ctx, vault, false); err != nil {
		return fmt.Errorf("failed to stop vault %s: %w", vault.Hex(), err)
	}
	undo.push(func(ctx context.Context) error {
		return c.backends.Vaults.SetActive(ctx, vault, true)
	})

	tokens, err := c.backends.Vaults.RewardTokens(ctx, vault)
	if err != nil {
		return fmt.Errorf("failed to read reward tokens of %s: %w", vault.Hex(), err)
	}

	for _, token := range tokens {
		token := token
		balance, err := c.backends.Tokens.BalanceOf(ctx, token, vault)
		if err != nil {
			return fmt.Errorf("failed to read %s balance of %s: %w", token.Hex(), vault.Hex(), err)
		}
		if balance.Sign() == 0 {
			continue
		}
		if err = c.backends.Tokens.Transfer(ctx, token, vault, c.address, balance); err != nil {
			return fmt.Errorf("failed to move rewards of %s: %w", vault.Hex(), err)
		}
		undo.push(func(ctx context.Context) error {
			return c.backends.Tokens.Transfer(ctx, token, c.address, vault, balance)
		})
	}

	return nil
}

// SetRewardBoostDuration applies an announced vault reward boost duration.
func (c *Controller) SetRewardBoostDuration(ctx context.Context, caller common.Address, value *big.Int) error {
	return c.executeUint(ctx, caller, types.OpRewardBoostDuration, value, func(ctx context.Context, _ *Tx) error {
		return c.backends.VaultSettings.SetRewardBoostDuration(ctx, value)
	})
}

// SetRewardRatioWithoutBoost applies an announced vault reward ratio without boost.
func (c *Controller) SetRewardRatioWithoutBoost(ctx context.Context, caller common.Address, value *big.Int) error {
	return c.executeUint(ctx, caller, types.OpRewardRatioWithoutBoost, value, func(ctx context.Context, _ *Tx) error {
		return c.backends.VaultSettings.SetRewardRatioWithoutBoost(ctx, value)
	})
}

// SetTimeLock applies an announced timelock duration, in seconds. Pending announcements keep
// their ready time.
func (c *Controller) SetTimeLock(ctx context.Context, caller common.Address, seconds *big.Int) error {
	return c.executeUint(ctx, caller, types.OpTimeLock, seconds, func(_ context.Context, tx *Tx) error {
		s, err := safecast.BigToUint64(seconds)
		if err != nil {
			return err
		}
		d, err := types.DurationFromSeconds(s)
		if err != nil {
			return err
		}

		return tx.SetDuration(d.Duration)
	})
}

func (c *Controller) executeUint(ctx context.Context, caller common.Address, op types.OpCode, value *big.Int, apply effect) error {
	return c.execute(ctx, caller, validated(types.UintChange{Op: op, Value: value}), apply)
}

// MintSplit is the distribution of one mint.
type MintSplit struct {
	Vaults *big.Int
	Dev    *big.Int
	Fund   *big.Int
}

// SplitMint divides amount: 33% net, of which 70% goes to vaults and 30% to dev. The fund
// receives the remainder, so the parts always sum to amount.
func SplitMint(amount *big.Int) MintSplit {
	net := new(big.Int).Div(new(big.Int).Mul(amount, big.NewInt(33)), big.NewInt(100))
	vaults := new(big.Int).Div(new(big.Int).Mul(net, big.NewInt(70)), big.NewInt(100))
	dev := new(big.Int).Div(new(big.Int).Mul(net, big.NewInt(30)), big.NewInt(100))
	fund := new(big.Int).Sub(amount, vaults)
	fund.Sub(fund, dev)

	return MintSplit{Vaults: vaults, Dev: dev, Fund: fund}
}

// MintAndDistribute mints reward tokens and splits them between the distributor, the dev fund
// and the fund. The announcement is matched against the distributor and fund current inside
// the registry transaction. With mintAllAvailable and a zero amount, everything the emission
// schedule allows is minted.
func (c *Controller) MintAndDistribute(ctx context.Context, caller common.Address, amount *big.Int, mintAllAvailable bool) error {
	var p types.Mint
	mint := func() ([]types.Payload, error) {
		if amount == nil {
			return nil, NewInvalidPayloadError(types.OpMint, errors.New("zero amount"))
		}

		c.mu.RLock()
		defer c.mu.RUnlock()
		p = types.Mint{
			MintHelper:       c.state.addresses[types.OpMintHelper],
			Amount:           amount,
			Distributor:      c.state.distributor,
			Fund:             c.state.addresses[types.OpFund],
			MintAllAvailable: mintAllAvailable,
		}

		return []types.Payload{p}, nil
	}

	return c.execute(ctx, caller, mint, func(ctx context.Context, _ *Tx) error {
		total := new(big.Int).Set(amount)
		if mintAllAvailable && amount.Sign() == 0 {
			maxSupply, err := c.backends.Minter.MaxSupplyForCurrentPeriod(ctx)
			if err != nil {
				return fmt.Errorf("failed to read max supply: %w", err)
			}
			supply, err := c.backends.Minter.TotalSupply(ctx)
			if err != nil {
				return fmt.Errorf("failed to read total supply: %w", err)
			}
			total.Sub(maxSupply, supply)
			if total.Sign() <= 0 {
				return errors.New("nothing available to mint")
			}
		}

		devFund, err := c.backends.Minter.DevFund(ctx)
		if err != nil {
			return fmt.Errorf("failed to read dev fund: %w", err)
		}

		split := SplitMint(total)
		err = c.backends.Minter.Mint(ctx, []sdk.Allocation{
			{To: p.Distributor, Amount: split.Vaults},
			{To: devFund, Amount: split.Dev},
			{To: p.Fund, Amount: split.Fund},
		})
		if err != nil {
			return fmt.Errorf("failed to mint %s: %w", total, err)
		}
		sdk.LoggerFrom(ctx).Infof("minted %s: vaults %s, dev %s, fund %s", total, split.Vaults, split.Dev, split.Fund)

		return nil
	})
}

type effect func(ctx context.Context, tx *Tx) error

// payloadsFunc builds the payloads of an operation. It runs inside the registry transaction,
// after the caller is authorized.
type payloadsFunc func() ([]types.Payload, error)

// execute checks that every payload is announced, matches and is ready, applies the effect and
// clears the announcements, all in one registry transaction.
func (c *Controller) execute(ctx context.Context, caller common.Address, build payloadsFunc, apply effect) error {
	return c.executeUnless(ctx, caller, build, apply, nil)
}

// executeUnless is execute, except that the effect is applied without any announcement when
// bypass reports true inside the transaction. A live announcement of the same payload is then
// cleared as well.
func (c *Controller) executeUnless(
	ctx context.Context, caller common.Address, build payloadsFunc, apply effect, bypass func() bool,
) error {
	now, err := unixNow(c.clock)
	if err != nil {
		return err
	}

	var (
		payloads []types.Payload
		bypassed bool
	)
	err = c.registry.Update(func(tx *Tx) error {
		if err := authorize(ctx, c.auth, caller); err != nil {
			return err
		}

		var err error
		if payloads, err = build(); err != nil {
			return err
		}

		if bypass != nil && bypass() {
			bypassed = true
			if err := clearMatching(tx, payloads); err != nil {
				return err
			}

			return apply(ctx, tx)
		}

		for _, p := range payloads {
			if err := checkAnnounced(tx, p, now); err != nil {
				return err
			}
		}

		if err := apply(ctx, tx); err != nil {
			return fmt.Errorf("failed to apply %s: %w", payloads[0].OpCode(), err)
		}

		for _, p := range payloads {
			if err := tx.Clear(types.KeyOf(p)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if bypassed {
		sdk.LoggerFrom(ctx).Infof("initialized empty %s slot without timelock", payloads[0].OpCode())
	}
	c.executed(ctx, payloads)

	return nil
}

func (c *Controller) executed(ctx context.Context, payloads []types.Payload) {
	lggr := sdk.LoggerFrom(ctx)
	for _, p := range payloads {
		lggr.Infof("executed %s", types.KeyOf(p))
		emit(ctx, c.sink, types.OperationExecuted{OpCode: p.OpCode(), Target: p.Target()})
	}
}

// clearMatching clears the live announcements whose hash equals their payload.
func clearMatching(tx *Tx, payloads []types.Payload) error {
	for _, p := range payloads {
		key := types.KeyOf(p)
		info, ok := tx.Live(key)
		if !ok {
			continue
		}

		opHash, err := p.Hash()
		if err != nil {
			return NewInvalidPayloadError(p.OpCode(), err)
		}
		if opHash != info.OpHash {
			continue
		}
		if err = tx.Clear(key); err != nil {
			return err
		}
	}

	return nil
}

// validated returns a payloadsFunc rejecting any payload that fails validation.
func validated(payloads ...types.Payload) payloadsFunc {
	return func() ([]types.Payload, error) {
		for _, p := range payloads {
			if err := p.Validate(); err != nil {
				return nil, NewInvalidPayloadError(p.OpCode(), err)
			}
		}

		return payloads, nil
	}
}

func proxyUpgrades(proxies, implementations []common.Address) payloadsFunc {
	return func() ([]types.Payload, error) {
		if err := checkBatch(types.OpTetuProxyUpdate, proxies, len(implementations)); err != nil {
			return nil, err
		}

		payloads := make([]types.Payload, len(proxies))
		for i := range proxies {
			payloads[i] = types.ProxyUpgrade{Proxy: proxies[i], Implementation: implementations[i]}
		}

		return payloads, nil
	}
}

func strategyUpgrades(vaults, strategies []common.Address) payloadsFunc {
	return func() ([]types.Payload, error) {
		if err := checkBatch(types.OpStrategyUpgrade, vaults, len(strategies)); err != nil {
			return nil, err
		}

		payloads := make([]types.Payload, len(vaults))
		for i := range vaults {
			payloads[i] = types.StrategyUpgrade{Vault: vaults[i], Strategy: strategies[i]}
		}

		return payloads, nil
	}
}

func vaultStops(vaults []common.Address) payloadsFunc {
	return func() ([]types.Payload, error) {
		if err := checkBatch(types.OpVaultStop, vaults, len(vaults)); err != nil {
			return nil, err
		}

		payloads := make([]types.Payload, len(vaults))
		for i, vault := range vaults {
			payloads[i] = types.VaultStop{Vault: vault}
		}

		return payloads, nil
	}
}

// checkAnnounced enforces the execute preconditions in order: a live announcement exists, its
// hash matches the supplied payload and its ready time has passed.
func checkAnnounced(tx *Tx, p types.Payload, now uint64) error {
	key := types.KeyOf(p)
	info, ok := tx.Live(key)
	if !ok {
		return NewNoSuchAnnouncementError(key)
	}

	opHash, err := p.Hash()
	if err != nil {
		return NewInvalidPayloadError(p.OpCode(), err)
	}
	if opHash != info.OpHash {
		return NewPayloadMismatchError(key, info.OpHash, opHash)
	}
	if !info.Ready(now) {
		return NewTimeLockNotReadyError(key, now, info.ReadyAt)
	}

	return nil
}

// undoStack compensates partially applied batch effects.
type undoStack []func(ctx context.Context) error

func (u *undoStack) push(fn func(ctx context.Context) error) {
	*u = append(*u, fn)
}

func (u undoStack) run(ctx context.Context) {
	for i := len(u) - 1; i >= 0; i-- {
		if err := u[i](ctx); err != nil {
			sdk.LoggerFrom(ctx).Warnf("failed to revert partial effect: %v", err)
		}
	}
}

func defaultBig(v *big.Int, def int64) *big.Int {
	if v == nil {
		return big.NewInt(def)
	}

	return new(big.Int).Set(v)
}
