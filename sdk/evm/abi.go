package evm

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// AnnouncerABI covers the read accessors and events of a deployed Announcer.
const AnnouncerABI = `[
	{"type":"function","name":"timeLockIndexes","stateMutability":"view",
		"inputs":[{"name":"opCode","type":"uint8"}],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"multiTimeLockIndexes","stateMutability":"view",
		"inputs":[{"name":"opCode","type":"uint8"},{"name":"target","type":"address"}],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"timeLockInfo","stateMutability":"view",
		"inputs":[{"name":"index","type":"uint256"}],
		"outputs":[{"name":"","type":"tuple","internalType":"struct IAnnouncer.TimeLockInfo","components":[
			{"name":"opCode","type":"uint8"},
			{"name":"opHash","type":"bytes32"},
			{"name":"target","type":"address"},
			{"name":"adrValues","type":"address[]"},
			{"name":"numValues","type":"uint256[]"}]}]},
	{"type":"function","name":"timeLockSchedule","stateMutability":"view",
		"inputs":[{"name":"opHash","type":"bytes32"}],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"timeLock","stateMutability":"view",
		"inputs":[],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"timeLockInfosLength","stateMutability":"view",
		"inputs":[],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"AnnouncementSubmitted","anonymous":false,"inputs":[
		{"name":"opCode","type":"uint8","indexed":true},
		{"name":"target","type":"address","indexed":true},
		{"name":"opHash","type":"bytes32","indexed":false},
		{"name":"readyAt","type":"uint256","indexed":false}]},
	{"type":"event","name":"AnnouncementClosed","anonymous":false,"inputs":[
		{"name":"opCode","type":"uint8","indexed":true},
		{"name":"opHash","type":"bytes32","indexed":false}]},
	{"type":"event","name":"OperationExecuted","anonymous":false,"inputs":[
		{"name":"opCode","type":"uint8","indexed":true},
		{"name":"target","type":"address","indexed":true}]}
]`

// ControllerABI covers the execute entry points of the Controller.
const ControllerABI = `[
	{"type":"function","name":"setGovernance","inputs":[{"name":"_governance","type":"address"}],"outputs":[]},
	{"type":"function","name":"setDao","inputs":[{"name":"_dao","type":"address"}],"outputs":[]},
	{"type":"function","name":"setFeeRewardForwarder","inputs":[{"name":"_feeRewardForwarder","type":"address"}],"outputs":[]},
	{"type":"function","name":"setBookkeeper","inputs":[{"name":"_bookkeeper","type":"address"}],"outputs":[]},
	{"type":"function","name":"setMintHelper","inputs":[{"name":"_mintHelper","type":"address"}],"outputs":[]},
	{"type":"function","name":"setRewardToken","inputs":[{"name":"_rewardToken","type":"address"}],"outputs":[]},
	{"type":"function","name":"setFundToken","inputs":[{"name":"_fundToken","type":"address"}],"outputs":[]},
	{"type":"function","name":"setPsVault","inputs":[{"name":"_psVault","type":"address"}],"outputs":[]},
	{"type":"function","name":"setFund","inputs":[{"name":"_fund","type":"address"}],"outputs":[]},
	{"type":"function","name":"setAnnouncer","inputs":[{"name":"_announcer","type":"address"}],"outputs":[]},
	{"type":"function","name":"setVaultController","inputs":[{"name":"_vaultController","type":"address"}],"outputs":[]},
	{"type":"function","name":"setPSNumeratorDenominator","inputs":[
		{"name":"numerator","type":"uint256"},{"name":"denominator","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"setFundNumeratorDenominator","inputs":[
		{"name":"numerator","type":"uint256"},{"name":"denominator","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"controllerTokenMove","inputs":[
		{"name":"_recipient","type":"address"},{"name":"_token","type":"address"},{"name":"_amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"strategyTokenMove","inputs":[
		{"name":"_strategy","type":"address"},{"name":"_token","type":"address"},{"name":"_amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"fundKeeperTokenMove","inputs":[
		{"name":"_fund","type":"address"},{"name":"_token","type":"address"},{"name":"_amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"upgradeTetuProxyBatch","inputs":[
		{"name":"_contracts","type":"address[]"},{"name":"_implementations","type":"address[]"}],"outputs":[]},
	{"type":"function","name":"setVaultStrategyBatch","inputs":[
		{"name":"_vaults","type":"address[]"},{"name":"_strategies","type":"address[]"}],"outputs":[]},
	{"type":"function","name":"mintAndDistribute","inputs":[
		{"name":"totalAmount","type":"uint256"},{"name":"mintAllAvailable","type":"bool"}],"outputs":[]}
]`

// VaultControllerABI covers the execute entry points owned by the VaultController.
const VaultControllerABI = `[
	{"type":"function","name":"setRewardBoostDuration","inputs":[{"name":"duration","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"setRewardRatioWithoutBoost","inputs":[{"name":"_ratio","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"stopVaultsBatch","inputs":[{"name":"_vaults","type":"address[]"}],"outputs":[]}
]`

var (
	announcerABI       = mustParseABI(AnnouncerABI)
	controllerABI      = mustParseABI(ControllerABI)
	vaultControllerABI = mustParseABI(VaultControllerABI)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}

	return parsed
}
