package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainSelector is a unique identifier for a chain.
//
// These values are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainSelector uint64

var (
	// ErrChainFamilyNotFound is returned when the chain family is not found for a selector
	ErrChainFamilyNotFound = errors.New("chain family not found")

	// ErrUnsupportedChainFamily is returned when the selector does not belong to an EVM chain
	ErrUnsupportedChainFamily = errors.New("unsupported chain family")
)

// ValidateChainSelector checks that the selector is known and belongs to an EVM chain, the only
// family the protocol is deployed on.
func ValidateChainSelector(sel ChainSelector) error {
	family, err := chainsel.GetSelectorFamily(uint64(sel))
	if err != nil {
		return fmt.Errorf("%w for selector %d", ErrChainFamilyNotFound, sel)
	}

	if family != chainsel.FamilyEVM {
		return fmt.Errorf("%w: %s", ErrUnsupportedChainFamily, family)
	}

	return nil
}

// ChainSelectorFromChainID resolves the selector of an EVM chain id.
func ChainSelectorFromChainID(chainID uint64) (ChainSelector, error) {
	sel, err := chainsel.SelectorFromChainId(chainID)
	if err != nil {
		return 0, err
	}

	return ChainSelector(sel), nil
}
