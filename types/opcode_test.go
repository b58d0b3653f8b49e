package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OpCode_Numbering(t *testing.T) {
	t.Parallel()

	// values are part of the opHash wire format
	assert.Equal(t, OpCode(0), OpGovernance)
	assert.Equal(t, OpCode(9), OpPsRatio)
	assert.Equal(t, OpCode(11), OpControllerTokenMove)
	assert.Equal(t, OpCode(14), OpTetuProxyUpdate)
	assert.Equal(t, OpCode(16), OpMint)
	assert.Equal(t, OpCode(17), OpAnnouncer)
	assert.Equal(t, OpCode(18), OpZeroPlaceholder)
	assert.Equal(t, OpCode(22), OpVaultStop)
	assert.Equal(t, OpCode(23), OpTimeLock)
	assert.Len(t, AllOpCodes(), 24)
}

func Test_OpCode_Family(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give            OpCode
		wantFamily      OpFamily
		wantMultiTarget bool
	}{
		{give: OpGovernance, wantFamily: FamilyAddressChange},
		{give: OpVaultController, wantFamily: FamilyAddressChange},
		{give: OpFundRatio, wantFamily: FamilyRatioChange},
		{give: OpFundTokenMove, wantFamily: FamilyTokenMove},
		{give: OpTetuProxyUpdate, wantFamily: FamilyProxyUpgrade, wantMultiTarget: true},
		{give: OpStrategyUpgrade, wantFamily: FamilyStrategyUpgrade, wantMultiTarget: true},
		{give: OpMint, wantFamily: FamilyMint},
		{give: OpZeroPlaceholder, wantFamily: FamilyNone},
		{give: OpRewardRatioWithoutBoost, wantFamily: FamilyUintChange},
		{give: OpVaultStop, wantFamily: FamilyVaultStop, wantMultiTarget: true},
		{give: OpCode(99), wantFamily: FamilyNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantFamily, tt.give.Family())
			assert.Equal(t, tt.wantMultiTarget, tt.give.MultiTarget())
		})
	}
}

func Test_OpCode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Governance", OpGovernance.String())
	assert.Equal(t, "TetuProxyUpdate", OpTetuProxyUpdate.String())
	assert.Equal(t, "OpCode(99)", OpCode(99).String())
}

func Test_ParseOpCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    OpCode
		wantErr string
	}{
		{name: "number", give: "16", want: OpMint},
		{name: "name", give: "VaultStop", want: OpVaultStop},
		{name: "name ignores case", give: "psratio", want: OpPsRatio},
		{name: "unknown number", give: "24", wantErr: "unknown opcode 24"},
		{name: "unknown name", give: "Nope", wantErr: `unknown opcode "Nope"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOpCode(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_NewKey(t *testing.T) {
	t.Parallel()

	target := addr(0x22)

	assert.Equal(t, Key{OpCode: OpGovernance}, NewKey(OpGovernance, target))
	assert.Equal(t, Key{OpCode: OpVaultStop, Target: target}, NewKey(OpVaultStop, target))
	assert.Equal(t, "Governance", NewKey(OpGovernance, target).String())
	assert.Equal(t, "VaultStop/"+target.Hex(), NewKey(OpVaultStop, target).String())
}
