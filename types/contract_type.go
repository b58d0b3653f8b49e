package types //nolint:revive,nolintlint // allow pkg name 'types'

// ContractType names a core protocol contract in the address book.
type ContractType string

const (
	ContractController         ContractType = "Controller"
	ContractAnnouncer          ContractType = "Announcer"
	ContractMintHelper         ContractType = "MintHelper"
	ContractRewardToken        ContractType = "RewardToken"
	ContractFundKeeper         ContractType = "FundKeeper"
	ContractNotifyHelper       ContractType = "NotifyHelper"
	ContractBookkeeper         ContractType = "Bookkeeper"
	ContractFeeRewardForwarder ContractType = "FeeRewardForwarder"
	ContractPsVault            ContractType = "PsVault"
	ContractVaultController    ContractType = "VaultController"
	ContractPriceCalculator    ContractType = "PriceCalculator"
)

func (ct ContractType) String() string {
	return string(ct)
}
