package timelock

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/tetu-timelock/types"
)

const (
	addrA = "0x1111111111111111111111111111111111111111"
	addrB = "0x2222222222222222222222222222222222222222"
	addrC = "0x3333333333333333333333333333333333333333"
)

func mustHash(t *testing.T) func(common.Hash, error) common.Hash {
	t.Helper()

	return func(h common.Hash, err error) common.Hash {
		require.NoError(t, err)
		return h
	}
}

func Test_hashArgs(t *testing.T) {
	t.Parallel()

	must := mustHash(t)
	a, b, c := common.HexToAddress(addrA), common.HexToAddress(addrB), common.HexToAddress(addrC)

	tests := []struct {
		name     string
		giveOp   types.OpCode
		giveArgs []string
		want     common.Hash
		wantErr  string
	}{
		{
			name:     "address change",
			giveOp:   types.OpDao,
			giveArgs: []string{addrA},
			want:     must(types.HashAddressChange(types.OpDao, a)),
		},
		{
			name:     "ratio change",
			giveOp:   types.OpPsRatio,
			giveArgs: []string{"7", "56"},
			want:     must(types.HashRatioChange(types.OpPsRatio, big.NewInt(7), big.NewInt(56))),
		},
		{
			name:     "uint change in hex",
			giveOp:   types.OpRewardBoostDuration,
			giveArgs: []string{"0xe10"},
			want:     must(types.HashUintChange(types.OpRewardBoostDuration, big.NewInt(3600))),
		},
		{
			name:     "token move",
			giveOp:   types.OpFundTokenMove,
			giveArgs: []string{addrA, addrB, "1000"},
			want:     must(types.HashTokenMove(types.OpFundTokenMove, a, b, big.NewInt(1000))),
		},
		{
			name:     "mint without flag",
			giveOp:   types.OpMint,
			giveArgs: []string{"500", addrA, addrB},
			want:     must(types.HashMint(big.NewInt(500), a, b, false)),
		},
		{
			name:     "mint all available",
			giveOp:   types.OpMint,
			giveArgs: []string{"0", addrA, addrB, "true"},
			want:     must(types.HashMint(big.NewInt(0), a, b, true)),
		},
		{
			name:     "proxy upgrade",
			giveOp:   types.OpTetuProxyUpdate,
			giveArgs: []string{addrA, addrC},
			want:     must(types.HashProxyUpgrade(a, c)),
		},
		{
			name:     "strategy upgrade",
			giveOp:   types.OpStrategyUpgrade,
			giveArgs: []string{addrB, addrC},
			want:     must(types.HashStrategyUpgrade(b, c)),
		},
		{
			name:     "vault stop",
			giveOp:   types.OpVaultStop,
			giveArgs: []string{addrC},
			want:     must(types.HashVaultStop(c)),
		},
		{
			name:     "failure: placeholder",
			giveOp:   types.OpZeroPlaceholder,
			giveArgs: []string{addrA},
			wantErr:  "opcode ZeroPlaceholder cannot be announced",
		},
		{
			name:     "failure: argument count",
			giveOp:   types.OpPsRatio,
			giveArgs: []string{"7"},
			wantErr:  "ratio-change expects 2 arguments, got 1",
		},
		{
			name:     "failure: bad address",
			giveOp:   types.OpTetuProxyUpdate,
			giveArgs: []string{addrA, "0x12"},
			wantErr:  `argument 2: invalid address "0x12"`,
		},
		{
			name:     "failure: negative number",
			giveOp:   types.OpTimeLock,
			giveArgs: []string{"-1"},
			wantErr:  `argument 1: invalid unsigned integer "-1"`,
		},
		{
			name:     "failure: bad mint flag",
			giveOp:   types.OpMint,
			giveArgs: []string{"0", addrA, addrB, "maybe"},
			wantErr:  `argument 4: invalid bool "maybe"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := hashArgs(tt.giveOp, tt.giveArgs)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_HashCmd(t *testing.T) {
	t.Parallel()

	want, err := types.HashRatioChange(types.OpFundRatio, big.NewInt(1), big.NewInt(10))
	require.NoError(t, err)

	cmd := BuildTimelockCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"hash", "FundRatio", "1", "10"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, want.Hex()+"\n", out.String())
}

func Test_BuildTimelockCmd(t *testing.T) {
	t.Parallel()

	cmd := BuildTimelockCmd()
	assert.Equal(t, "timelock", cmd.Use)

	for _, name := range []string{"selector", "address-book", "version", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag %q not found", name)
	}

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"hash", "status", "info", "wait", "events", "calldata"}, names)
}

func Test_parseHash(t *testing.T) {
	t.Parallel()

	h, err := parseHash("0x" + common.Bytes2Hex(bytes.Repeat([]byte{0xab}, 32)))
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), h[31])

	_, err = parseHash("0xabcd")
	require.EqualError(t, err, `invalid opHash "0xabcd"`)
}
