package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"
	"strconv"
	"strings"
)

// OpCode identifies the kind of privileged mutation an announcement carries. The numeric values
// are part of the opHash wire format and must never be renumbered.
type OpCode uint8

const (
	OpGovernance OpCode = iota
	OpDao
	OpFeeRewardForwarder
	OpBookkeeper
	OpMintHelper
	OpRewardToken
	OpFundToken
	OpPsVault
	OpFund
	OpPsRatio
	OpFundRatio
	OpControllerTokenMove
	OpStrategyTokenMove
	OpFundTokenMove
	OpTetuProxyUpdate
	OpStrategyUpgrade
	OpMint
	OpAnnouncer
	OpZeroPlaceholder
	OpVaultController
	OpRewardBoostDuration
	OpRewardRatioWithoutBoost
	OpVaultStop
	OpTimeLock
)

// OpFamily groups opcodes that share a payload shape and announce entry point.
type OpFamily string

const (
	FamilyAddressChange   OpFamily = "address-change"
	FamilyRatioChange     OpFamily = "ratio-change"
	FamilyTokenMove       OpFamily = "token-move"
	FamilyUintChange      OpFamily = "uint-change"
	FamilyMint            OpFamily = "mint"
	FamilyProxyUpgrade    OpFamily = "proxy-upgrade"
	FamilyStrategyUpgrade OpFamily = "strategy-upgrade"
	FamilyVaultStop       OpFamily = "vault-stop"
	FamilyNone            OpFamily = "none"
)

type opCodeMeta struct {
	name   string
	family OpFamily
}

var opCodes = [...]opCodeMeta{
	OpGovernance:              {"Governance", FamilyAddressChange},
	OpDao:                     {"Dao", FamilyAddressChange},
	OpFeeRewardForwarder:      {"FeeRewardForwarder", FamilyAddressChange},
	OpBookkeeper:              {"Bookkeeper", FamilyAddressChange},
	OpMintHelper:              {"MintHelper", FamilyAddressChange},
	OpRewardToken:             {"RewardToken", FamilyAddressChange},
	OpFundToken:               {"FundToken", FamilyAddressChange},
	OpPsVault:                 {"PsVault", FamilyAddressChange},
	OpFund:                    {"Fund", FamilyAddressChange},
	OpPsRatio:                 {"PsRatio", FamilyRatioChange},
	OpFundRatio:               {"FundRatio", FamilyRatioChange},
	OpControllerTokenMove:     {"ControllerTokenMove", FamilyTokenMove},
	OpStrategyTokenMove:       {"StrategyTokenMove", FamilyTokenMove},
	OpFundTokenMove:           {"FundTokenMove", FamilyTokenMove},
	OpTetuProxyUpdate:         {"TetuProxyUpdate", FamilyProxyUpgrade},
	OpStrategyUpgrade:         {"StrategyUpgrade", FamilyStrategyUpgrade},
	OpMint:                    {"Mint", FamilyMint},
	OpAnnouncer:               {"Announcer", FamilyAddressChange},
	OpZeroPlaceholder:         {"ZeroPlaceholder", FamilyNone},
	OpVaultController:         {"VaultController", FamilyAddressChange},
	OpRewardBoostDuration:     {"RewardBoostDuration", FamilyUintChange},
	OpRewardRatioWithoutBoost: {"RewardRatioWithoutBoost", FamilyUintChange},
	OpVaultStop:               {"VaultStop", FamilyVaultStop},
	OpTimeLock:                {"TimeLock", FamilyUintChange},
}

// AllOpCodes returns every defined opcode in numeric order.
func AllOpCodes() []OpCode {
	out := make([]OpCode, len(opCodes))
	for i := range opCodes {
		out[i] = OpCode(i)
	}

	return out
}

// Valid reports whether the opcode is part of the defined set.
func (o OpCode) Valid() bool {
	return int(o) < len(opCodes)
}

// String returns the opcode name, or its number for undefined values.
func (o OpCode) String() string {
	if !o.Valid() {
		return "OpCode(" + strconv.Itoa(int(o)) + ")"
	}

	return opCodes[o].name
}

// Family returns the payload family of the opcode.
func (o OpCode) Family() OpFamily {
	if !o.Valid() {
		return FamilyNone
	}

	return opCodes[o].family
}

// MultiTarget reports whether pending announcements of this opcode are tracked per target
// contract rather than in a single global slot.
func (o OpCode) MultiTarget() bool {
	switch o.Family() {
	case FamilyProxyUpgrade, FamilyStrategyUpgrade, FamilyVaultStop:
		return true
	default:
		return false
	}
}

// ParseOpCode accepts either the decimal opcode or its case-insensitive name.
func ParseOpCode(s string) (OpCode, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		op := OpCode(n)
		if !op.Valid() {
			return 0, fmt.Errorf("unknown opcode %d", n)
		}

		return op, nil
	}

	for i, meta := range opCodes {
		if strings.EqualFold(meta.name, s) {
			return OpCode(i), nil
		}
	}

	return 0, fmt.Errorf("unknown opcode %q", s)
}
