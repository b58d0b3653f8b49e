package sdkerrors

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/types"
)

// UnknownContractError is returned when an address resolver has no entry for a contract type.
type UnknownContractError struct {
	ContractType types.ContractType
}

func (e *UnknownContractError) Error() string {
	return fmt.Sprintf("unknown contract: %s", e.ContractType)
}

func NewUnknownContractError(ct types.ContractType) *UnknownContractError {
	return &UnknownContractError{ContractType: ct}
}

// UnknownVaultError is returned when a vault is not registered with the vault manager.
type UnknownVaultError struct {
	Vault common.Address
}

func (e *UnknownVaultError) Error() string {
	return "unknown vault: " + e.Vault.Hex()
}

func NewUnknownVaultError(vault common.Address) *UnknownVaultError {
	return &UnknownVaultError{Vault: vault}
}

// UnknownProxyError is returned when a proxy is not controlled by the upgrader.
type UnknownProxyError struct {
	Proxy common.Address
}

func (e *UnknownProxyError) Error() string {
	return "unknown proxy: " + e.Proxy.Hex()
}

func NewUnknownProxyError(proxy common.Address) *UnknownProxyError {
	return &UnknownProxyError{Proxy: proxy}
}

// InsufficientBalanceError is returned when a transfer exceeds the holder balance.
type InsufficientBalanceError struct {
	Token     common.Address
	Holder    common.Address
	Balance   *big.Int
	Requested *big.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance of %s at %s: have %s, want %s",
		e.Token.Hex(), e.Holder.Hex(), e.Balance, e.Requested)
}

func NewInsufficientBalanceError(token, holder common.Address, balance, requested *big.Int) *InsufficientBalanceError {
	return &InsufficientBalanceError{Token: token, Holder: holder, Balance: balance, Requested: requested}
}

// SupplyCapExceededError is returned when a mint would exceed the emission schedule.
type SupplyCapExceededError struct {
	MaxSupply *big.Int
	NewSupply *big.Int
}

func (e *SupplyCapExceededError) Error() string {
	return fmt.Sprintf("supply cap exceeded: max %s, new supply %s", e.MaxSupply, e.NewSupply)
}

func NewSupplyCapExceededError(maxSupply, newSupply *big.Int) *SupplyCapExceededError {
	return &SupplyCapExceededError{MaxSupply: maxSupply, NewSupply: newSupply}
}
