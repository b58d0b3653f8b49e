package memory

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/tetu-timelock/sdk"
	sdkerrors "github.com/tetu-io/tetu-timelock/sdk/errors"
)

var (
	tokenA  = common.HexToAddress("0xa1")
	holderA = common.HexToAddress("0xb1")
	holderB = common.HexToAddress("0xb2")
)

func Test_Ledger_Transfer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		giveCredit  int64
		giveAmount  int64
		wantErr     bool
		wantErrMsg  string
		wantBalance int64
	}{
		{name: "success", giveCredit: 100, giveAmount: 40, wantBalance: 60},
		{name: "success: whole balance", giveCredit: 100, giveAmount: 100, wantBalance: 0},
		{name: "failure: insufficient balance", giveCredit: 10, giveAmount: 11, wantErr: true, wantBalance: 10},
		{
			name:       "failure: zero amount from holder without balance",
			giveAmount: 0,
			wantErrMsg: "transfer amount must be positive, got 0",
		},
		{
			name:       "failure: negative amount from holder without balance",
			giveAmount: -5,
			wantErrMsg: "transfer amount must be positive, got -5",
		},
		{
			name:        "failure: negative amount",
			giveCredit:  10,
			giveAmount:  -5,
			wantErrMsg:  "transfer amount must be positive, got -5",
			wantBalance: 10,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			l := NewLedger()
			if tt.giveCredit != 0 {
				l.Credit(tokenA, holderA, big.NewInt(tt.giveCredit))
			}

			err := l.Transfer(ctx, tokenA, holderA, holderB, big.NewInt(tt.giveAmount))

			switch {
			case tt.wantErrMsg != "":
				require.EqualError(t, err, tt.wantErrMsg)
				got, _ := l.BalanceOf(ctx, tokenA, holderB)
				assert.Equal(t, int64(0), got.Int64())
			case tt.wantErr:
				var target *sdkerrors.InsufficientBalanceError
				require.ErrorAs(t, err, &target)
			default:
				require.NoError(t, err)
				got, _ := l.BalanceOf(ctx, tokenA, holderB)
				assert.Equal(t, tt.giveAmount, got.Int64())
			}

			got, err := l.BalanceOf(ctx, tokenA, holderA)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, got.Int64())
		})
	}
}

func Test_Proxies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	proxy := common.HexToAddress("0x14")
	p := NewProxies()
	p.Deploy(proxy, common.HexToAddress("0x1"))

	require.NoError(t, p.UpgradeProxy(ctx, proxy, common.HexToAddress("0x2")))
	got, err := p.Implementation(ctx, proxy)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x2"), got)

	err = p.UpgradeProxy(ctx, common.HexToAddress("0x15"), common.HexToAddress("0x2"))
	require.EqualError(t, err, "unknown proxy: 0x0000000000000000000000000000000000000015")
}

func Test_Vaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	vault := common.HexToAddress("0x22")
	v := NewVaults()
	v.Add(vault, common.HexToAddress("0x5"), tokenA)

	active, err := v.IsActive(ctx, vault)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, v.SetActive(ctx, vault, false))
	active, err = v.IsActive(ctx, vault)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, v.SetStrategy(ctx, vault, common.HexToAddress("0x6")))
	strategy, err := v.Strategy(ctx, vault)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x6"), strategy)

	tokens, err := v.RewardTokens(ctx, vault)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{tokenA}, tokens)

	_, err = v.Strategy(ctx, common.HexToAddress("0x23"))
	var target *sdkerrors.UnknownVaultError
	require.ErrorAs(t, err, &target)

	require.NoError(t, v.SetRewardBoostDuration(ctx, big.NewInt(86400)))
	got, err := v.RewardBoostDuration(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(86400), got.Int64())
}

func Test_RewardToken_Mint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	genesis := time.Unix(1_700_000_000, 0)
	clock := NewClock(genesis)
	ledger := NewLedger()
	devFund := common.HexToAddress("0xde")

	rt, err := NewRewardToken(tokenA, ledger, devFund, EmissionSchedule{
		Genesis:   genesis,
		Period:    7 * 24 * time.Hour,
		PerPeriod: big.NewInt(1000),
		HardCap:   big.NewInt(2500),
	}, clock)
	require.NoError(t, err)

	maxSupply, err := rt.MaxSupplyForCurrentPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), maxSupply.Int64())

	err = rt.Mint(ctx, []sdk.Allocation{
		{To: holderA, Amount: big.NewInt(600)},
		{To: holderB, Amount: big.NewInt(401)},
	})
	var capErr *sdkerrors.SupplyCapExceededError
	require.ErrorAs(t, err, &capErr)

	supply, err := rt.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), supply.Int64())

	require.NoError(t, rt.Mint(ctx, []sdk.Allocation{
		{To: holderA, Amount: big.NewInt(600)},
		{To: holderB, Amount: big.NewInt(400)},
		{To: devFund, Amount: big.NewInt(0)},
	}))

	bal, err := ledger.BalanceOf(ctx, tokenA, holderB)
	require.NoError(t, err)
	assert.Equal(t, int64(400), bal.Int64())

	clock.Advance(3 * 7 * 24 * time.Hour)
	maxSupply, err = rt.MaxSupplyForCurrentPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), maxSupply.Int64())
}

func Test_NewRewardToken_InvalidSchedule(t *testing.T) {
	t.Parallel()

	_, err := NewRewardToken(tokenA, NewLedger(), common.Address{}, EmissionSchedule{}, NewClock(time.Now()))
	require.ErrorContains(t, err, "invalid emission schedule")
}
