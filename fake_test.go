package timelock

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/sdk/memory"
	"github.com/tetu-io/tetu-timelock/types"
)

var (
	controllerAddr  = common.HexToAddress("0xc0")
	governanceAddr  = common.HexToAddress("0x60")
	strangerAddr    = common.HexToAddress("0x61")
	mintHelperAddr  = common.HexToAddress("0xe0")
	rewardTokenAddr = common.HexToAddress("0xe1")
	fundAddr        = common.HexToAddress("0xf0")
	distributorAddr = common.HexToAddress("0xd0")
	devFundAddr     = common.HexToAddress("0xde")
	vaultA          = common.HexToAddress("0x22")
	vaultB          = common.HexToAddress("0x23")
	strategyA       = common.HexToAddress("0x5a")
	proxyA          = common.HexToAddress("0x14")
	proxyB          = common.HexToAddress("0x15")
	implA           = common.HexToAddress("0x1a")
	implB           = common.HexToAddress("0x1b")
)

var (
	genesis      = time.Unix(1_700_000_000, 0)
	weeklySupply = new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))
)

// testEnv wires a registry, controller and announcer over the in-memory backends.
type testEnv struct {
	clock      *memory.Clock
	hook       *hookClock
	events     *EventLog
	ledger     *memory.Ledger
	proxies    *memory.Proxies
	vaults     *memory.Vaults
	token      *memory.RewardToken
	registry   *Registry
	controller *Controller
	announcer  *Announcer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		clock:   memory.NewClock(genesis),
		events:  &EventLog{},
		ledger:  memory.NewLedger(),
		proxies: memory.NewProxies(),
		vaults:  memory.NewVaults(),
	}

	env.hook = &hookClock{Clock: env.clock}

	var err error
	env.token, err = memory.NewRewardToken(rewardTokenAddr, env.ledger, devFundAddr, memory.EmissionSchedule{
		Genesis:   genesis,
		Period:    7 * 24 * time.Hour,
		PerPeriod: weeklySupply,
		HardCap:   new(big.Int).Mul(weeklySupply, big.NewInt(100)),
	}, env.clock)
	require.NoError(t, err)

	env.proxies.Deploy(proxyA, common.HexToAddress("0x10"))
	env.proxies.Deploy(proxyB, common.HexToAddress("0x11"))
	env.vaults.Add(vaultA, strategyA, rewardTokenAddr)
	env.vaults.Add(vaultB, strategyA)

	env.registry = NewRegistry(WithDuration(48 * time.Hour))
	env.controller, err = NewController(env.registry, ControllerConfig{
		Address:     controllerAddr,
		Governance:  governanceAddr,
		MintHelper:  mintHelperAddr,
		RewardToken: rewardTokenAddr,
		Fund:        fundAddr,
		Distributor: distributorAddr,
	}, Backends{
		Tokens:        env.ledger,
		Proxies:       env.proxies,
		Vaults:        env.vaults,
		VaultSettings: env.vaults,
		Minter:        env.token,
	}, WithClock(env.hook), WithEventSink(env.events))
	require.NoError(t, err)

	env.announcer, err = NewAnnouncer(env.registry,
		WithAuthorizer(env.controller),
		WithAddressResolver(env.controller),
		WithClock(env.hook),
		WithEventSink(env.events),
	)
	require.NoError(t, err)

	return env
}

// waitTimeLock advances the clock by the current timelock duration.
func (e *testEnv) waitTimeLock(t *testing.T) {
	t.Helper()

	d, err := e.announcer.TimeLock(context.Background())
	require.NoError(t, err)
	e.clock.Advance(d)
}

func (e *testEnv) index(t *testing.T, op types.OpCode, target common.Address) uint64 {
	t.Helper()

	ctx := context.Background()
	var (
		idx *big.Int
		err error
	)
	if op.MultiTarget() {
		idx, err = e.announcer.MultiTimeLockIndexes(ctx, op, target)
	} else {
		idx, err = e.announcer.TimeLockIndexes(ctx, op)
	}
	require.NoError(t, err)

	return idx.Uint64()
}

func (e *testEnv) balance(t *testing.T, token, holder common.Address) *big.Int {
	t.Helper()

	bal, err := e.ledger.BalanceOf(context.Background(), token, holder)
	require.NoError(t, err)

	return bal
}

// hookClock runs a one-shot hook before each read of the wrapped clock.
type hookClock struct {
	sdk.Clock

	mu    sync.Mutex
	onNow func()
}

func (c *hookClock) Now() time.Time {
	c.mu.Lock()
	fn := c.onNow
	c.onNow = nil
	c.mu.Unlock()

	if fn != nil {
		fn()
	}

	return c.Clock.Now()
}

// once arranges for fn to run on the next read of the clock.
func (c *hookClock) once(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onNow = fn
}

// fakeAuthorizer returns the configured answer for every caller.
type fakeAuthorizer struct {
	ok  bool
	err error
}

func (f *fakeAuthorizer) IsGovernance(context.Context, common.Address) (bool, error) {
	return f.ok, f.err
}

// fakeResolver resolves every contract type to the same address.
type fakeResolver struct {
	addr common.Address
	err  error
}

func (f *fakeResolver) Address(context.Context, types.ContractType) (common.Address, error) {
	return f.addr, f.err
}

// failingSink rejects every event.
type failingSink struct{}

func (failingSink) Emit(context.Context, types.Event) error {
	return errors.New("sink unavailable")
}

// fakeInspector serves a fixed schedule and optionally fails.
type fakeInspector struct {
	sdk.TimelockInspector

	schedule map[common.Hash]uint64
	err      error
	calls    int
}

func (f *fakeInspector) TimeLockSchedule(_ context.Context, opHash common.Hash) (*big.Int, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return new(big.Int).SetUint64(f.schedule[opHash]), nil
}
