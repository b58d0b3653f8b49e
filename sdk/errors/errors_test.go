package sdkerrors

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/tetu-io/tetu-timelock/types"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	a := common.HexToAddress("0x1")
	b := common.HexToAddress("0x2")

	tests := []struct {
		err      error
		expected string
	}{
		{NewUnknownContractError(types.ContractPriceCalculator), "unknown contract: PriceCalculator"},
		{NewUnknownVaultError(a), "unknown vault: 0x0000000000000000000000000000000000000001"},
		{NewUnknownProxyError(b), "unknown proxy: 0x0000000000000000000000000000000000000002"},
		{
			NewInsufficientBalanceError(a, b, big.NewInt(1), big.NewInt(2)),
			"insufficient balance of 0x0000000000000000000000000000000000000001 at " +
				"0x0000000000000000000000000000000000000002: have 1, want 2",
		},
		{NewSupplyCapExceededError(big.NewInt(10), big.NewInt(11)), "supply cap exceeded: max 10, new supply 11"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}
