package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"

	"github.com/tetu-io/tetu-timelock/internal/utils/abi"
)

// ErrInvalidPayload is wrapped by every payload shape violation.
var ErrInvalidPayload = errors.New("invalid payload")

var validate = validator.New()

// Payload is the typed body of an announcement. The set of implementations is closed; every
// implementation lives in this file.
type Payload interface {
	// OpCode returns the opcode the payload is announced under.
	OpCode() OpCode
	// Target returns the contract the operation mutates. It is the zero address for global
	// operations.
	Target() common.Address
	// Hash returns the opHash binding the opcode and arguments.
	Hash() (common.Hash, error)
	// Values returns the address and numeric arguments in declared order, as stored in the
	// registry record.
	Values() ([]common.Address, []*big.Int)
	// Validate checks the payload shape.
	Validate() error

	payload()
}

// KeyOf returns the registry key a payload occupies.
func KeyOf(p Payload) Key {
	return NewKey(p.OpCode(), p.Target())
}

// AddressChange replaces one of the controller's core addresses.
type AddressChange struct {
	Op         OpCode         `json:"opCode"`
	Controller common.Address `json:"controller" validate:"required"`
	NewAddress common.Address `json:"newAddress" validate:"required"`
}

func (p AddressChange) OpCode() OpCode {
	return p.Op
}

func (p AddressChange) Target() common.Address {
	return p.Controller
}

func (p AddressChange) payload() {}

func (p AddressChange) Hash() (common.Hash, error) {
	return HashAddressChange(p.Op, p.NewAddress)
}

func (p AddressChange) Values() ([]common.Address, []*big.Int) {
	return []common.Address{p.NewAddress}, []*big.Int{}
}

func (p AddressChange) Validate() error {
	if err := checkFamily(p.Op, FamilyAddressChange); err != nil {
		return err
	}
	if p.NewAddress == (common.Address{}) {
		return invalid("zero address")
	}

	return validateStruct(p)
}

// RatioChange replaces a numerator/denominator pair on the controller.
type RatioChange struct {
	Op          OpCode         `json:"opCode"`
	Controller  common.Address `json:"controller" validate:"required"`
	Numerator   *big.Int       `json:"numerator" validate:"required"`
	Denominator *big.Int       `json:"denominator" validate:"required"`
}

func (p RatioChange) OpCode() OpCode {
	return p.Op
}

func (p RatioChange) Target() common.Address {
	return p.Controller
}

func (p RatioChange) payload() {}

func (p RatioChange) Hash() (common.Hash, error) {
	return HashRatioChange(p.Op, p.Numerator, p.Denominator)
}

func (p RatioChange) Values() ([]common.Address, []*big.Int) {
	return []common.Address{}, []*big.Int{copyBig(p.Numerator), copyBig(p.Denominator)}
}

func (p RatioChange) Validate() error {
	if err := checkFamily(p.Op, FamilyRatioChange); err != nil {
		return err
	}
	if err := validateStruct(p); err != nil {
		return err
	}
	if err := checkUint256(p.Numerator, p.Denominator); err != nil {
		return err
	}
	if p.Denominator.Sign() == 0 {
		return invalid("cannot divide by 0")
	}
	if p.Numerator.Cmp(p.Denominator) > 0 {
		return invalid("numerator greater than denominator")
	}

	return nil
}

// UintChange replaces a single numeric protocol parameter.
type UintChange struct {
	Op    OpCode   `json:"opCode"`
	Value *big.Int `json:"value" validate:"required"`
}

func (p UintChange) OpCode() OpCode {
	return p.Op
}

func (p UintChange) Target() common.Address {
	return common.Address{}
}

func (p UintChange) payload() {}

func (p UintChange) Hash() (common.Hash, error) {
	return HashUintChange(p.Op, p.Value)
}

func (p UintChange) Values() ([]common.Address, []*big.Int) {
	return []common.Address{}, []*big.Int{copyBig(p.Value)}
}

func (p UintChange) Validate() error {
	if err := checkFamily(p.Op, FamilyUintChange); err != nil {
		return err
	}
	if err := validateStruct(p); err != nil {
		return err
	}

	return checkUint256(p.Value)
}

// TokenMove salvages tokens from a protocol contract.
type TokenMove struct {
	Op     OpCode         `json:"opCode"`
	To     common.Address `json:"target" validate:"required"`
	Token  common.Address `json:"token" validate:"required"`
	Amount *big.Int       `json:"amount" validate:"required"`
}

func (p TokenMove) OpCode() OpCode {
	return p.Op
}

func (p TokenMove) Target() common.Address {
	return p.To
}

func (p TokenMove) payload() {}

func (p TokenMove) Hash() (common.Hash, error) {
	return HashTokenMove(p.Op, p.To, p.Token, p.Amount)
}

func (p TokenMove) Values() ([]common.Address, []*big.Int) {
	return []common.Address{p.Token}, []*big.Int{copyBig(p.Amount)}
}

func (p TokenMove) Validate() error {
	if err := checkFamily(p.Op, FamilyTokenMove); err != nil {
		return err
	}
	switch {
	case p.To == (common.Address{}):
		return invalid("zero target")
	case p.Token == (common.Address{}):
		return invalid("zero token")
	case p.Amount == nil || p.Amount.Sign() == 0:
		return invalid("zero amount")
	}

	return checkUint256(p.Amount)
}

// Mint mints reward tokens through the mint helper and splits them between the distributor, the
// treasury and the fund.
type Mint struct {
	MintHelper       common.Address `json:"mintHelper" validate:"required"`
	Amount           *big.Int       `json:"amount" validate:"required"`
	Distributor      common.Address `json:"distributor"`
	Fund             common.Address `json:"fund"`
	MintAllAvailable bool           `json:"mintAllAvailable"`
}

func (p Mint) OpCode() OpCode {
	return OpMint
}

func (p Mint) Target() common.Address {
	return p.MintHelper
}

func (p Mint) payload() {}

func (p Mint) Hash() (common.Hash, error) {
	return HashMint(p.Amount, p.Distributor, p.Fund, p.MintAllAvailable)
}

func (p Mint) Values() ([]common.Address, []*big.Int) {
	return []common.Address{p.Distributor, p.Fund}, []*big.Int{copyBig(p.Amount)}
}

func (p Mint) Validate() error {
	switch {
	case p.Amount == nil || (p.Amount.Sign() == 0 && !p.MintAllAvailable):
		return invalid("zero amount")
	case p.Distributor == (common.Address{}):
		return invalid("zero distributor")
	case p.Fund == (common.Address{}):
		return invalid("zero fund")
	}
	if err := validateStruct(p); err != nil {
		return err
	}

	return checkUint256(p.Amount)
}

// ProxyUpgrade points a controlled proxy at a new implementation.
type ProxyUpgrade struct {
	Proxy          common.Address `json:"proxy" validate:"required"`
	Implementation common.Address `json:"implementation"`
}

func (p ProxyUpgrade) OpCode() OpCode {
	return OpTetuProxyUpdate
}

func (p ProxyUpgrade) Target() common.Address {
	return p.Proxy
}

func (p ProxyUpgrade) payload() {}

func (p ProxyUpgrade) Hash() (common.Hash, error) {
	return HashProxyUpgrade(p.Proxy, p.Implementation)
}

func (p ProxyUpgrade) Values() ([]common.Address, []*big.Int) {
	return []common.Address{p.Implementation}, []*big.Int{}
}

func (p ProxyUpgrade) Validate() error {
	if p.Implementation == (common.Address{}) {
		return invalid("zero impl")
	}

	return validateStruct(p)
}

// StrategyUpgrade swaps the strategy of a vault.
type StrategyUpgrade struct {
	Vault    common.Address `json:"vault" validate:"required"`
	Strategy common.Address `json:"strategy"`
}

func (p StrategyUpgrade) OpCode() OpCode {
	return OpStrategyUpgrade
}

func (p StrategyUpgrade) Target() common.Address {
	return p.Vault
}

func (p StrategyUpgrade) payload() {}

func (p StrategyUpgrade) Hash() (common.Hash, error) {
	return HashStrategyUpgrade(p.Vault, p.Strategy)
}

func (p StrategyUpgrade) Values() ([]common.Address, []*big.Int) {
	return []common.Address{p.Strategy}, []*big.Int{}
}

func (p StrategyUpgrade) Validate() error {
	if p.Strategy == (common.Address{}) {
		return invalid("zero strategy")
	}

	return validateStruct(p)
}

// VaultStop deactivates a vault and returns its reward tokens to the controller.
type VaultStop struct {
	Vault common.Address `json:"vault" validate:"required"`
}

func (p VaultStop) OpCode() OpCode {
	return OpVaultStop
}

func (p VaultStop) Target() common.Address {
	return p.Vault
}

func (p VaultStop) payload() {}

func (p VaultStop) Hash() (common.Hash, error) {
	return HashVaultStop(p.Vault)
}

func (p VaultStop) Values() ([]common.Address, []*big.Int) {
	return []common.Address{}, []*big.Int{}
}

func (p VaultStop) Validate() error {
	if p.Vault == (common.Address{}) {
		return invalid("zero vault")
	}

	return nil
}

// HashAddressChange returns keccak256(abi.encode(opCode, newAddress)).
func HashAddressChange(op OpCode, newAddress common.Address) (common.Hash, error) {
	return hashOf([]string{"uint8", "address"}, uint8(op), newAddress)
}

// HashUintChange returns keccak256(abi.encode(opCode, value)).
func HashUintChange(op OpCode, value *big.Int) (common.Hash, error) {
	return hashOf([]string{"uint8", "uint256"}, uint8(op), orZero(value))
}

// HashRatioChange returns keccak256(abi.encode(opCode, numerator, denominator)).
func HashRatioChange(op OpCode, numerator, denominator *big.Int) (common.Hash, error) {
	return hashOf([]string{"uint8", "uint256", "uint256"}, uint8(op), orZero(numerator), orZero(denominator))
}

// HashTokenMove returns keccak256(abi.encode(opCode, target, token, amount)).
func HashTokenMove(op OpCode, target, token common.Address, amount *big.Int) (common.Hash, error) {
	return hashOf([]string{"uint8", "address", "address", "uint256"}, uint8(op), target, token, orZero(amount))
}

// HashMint returns keccak256(abi.encode(Mint, amount, distributor, fund, mintAllAvailable)).
func HashMint(amount *big.Int, distributor, fund common.Address, mintAllAvailable bool) (common.Hash, error) {
	return hashOf(
		[]string{"uint8", "uint256", "address", "address", "bool"},
		uint8(OpMint), orZero(amount), distributor, fund, mintAllAvailable,
	)
}

// HashProxyUpgrade returns keccak256(abi.encode(TetuProxyUpdate, proxy, implementation)).
func HashProxyUpgrade(proxy, implementation common.Address) (common.Hash, error) {
	return hashOf([]string{"uint8", "address", "address"}, uint8(OpTetuProxyUpdate), proxy, implementation)
}

// HashStrategyUpgrade returns keccak256(abi.encode(StrategyUpgrade, vault, strategy)).
func HashStrategyUpgrade(vault, strategy common.Address) (common.Hash, error) {
	return hashOf([]string{"uint8", "address", "address"}, uint8(OpStrategyUpgrade), vault, strategy)
}

// HashVaultStop returns keccak256(abi.encode(VaultStop, vault)).
func HashVaultStop(vault common.Address) (common.Hash, error) {
	return hashOf([]string{"uint8", "address"}, uint8(OpVaultStop), vault)
}

func hashOf(typeNames []string, values ...any) (common.Hash, error) {
	encoded, err := abi.Encode(typeNames, values...)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

func checkFamily(op OpCode, family OpFamily) error {
	if op.Family() != family {
		return invalid(fmt.Sprintf("opcode %s is not a %s operation", op, family))
	}

	return nil
}

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func checkUint256(values ...*big.Int) error {
	for _, v := range values {
		if v.Sign() < 0 || v.Cmp(maxUint256) > 0 {
			return invalid(fmt.Sprintf("value %s out of uint256 range", v))
		}
	}

	return nil
}

func validateStruct(p Payload) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, reason)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}

func copyBig(v *big.Int) *big.Int {
	return new(big.Int).Set(orZero(v))
}
