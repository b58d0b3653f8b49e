package timelock

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/tetu-timelock/types"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	vault := common.HexToAddress("0x22")
	hash := common.HexToHash("0x01")
	stopKey := types.NewKey(types.OpVaultStop, vault)

	tests := []struct {
		err      error
		expected string
	}{
		{NewUnauthorizedError(common.HexToAddress("0x1")), "unauthorized: 0x0000000000000000000000000000000000000001 is not governance"},
		{NewInvalidPayloadError(types.OpMint, errors.New("zero amount")), "Mint: invalid payload: zero amount"},
		{NewDuplicatePendingError(types.NewKey(types.OpDao, vault), 3), "announcement for Dao already pending at index 3"},
		{NewIndexNotFoundError(7), "timelock info 7 not found"},
		{NewIndexOutOfRangeError(big.NewInt(-3)), "timelock info -3 not found"},
		{
			NewAnnouncementNotFoundError(stopKey, hash),
			"announcement 0x0000000000000000000000000000000000000000000000000000000000000001 not found for VaultStop/0x0000000000000000000000000000000000000022",
		},
		{NewNoSuchAnnouncementError(types.NewKey(types.OpPsRatio, vault)), "no announcement pending for PsRatio"},
		{
			NewNoSuchScheduleError(hash),
			"no announcement scheduled for hash 0x0000000000000000000000000000000000000000000000000000000000000001",
		},
		{NewTimeLockNotReadyError(types.NewKey(types.OpMint, vault), 9, 10), "timelock for Mint not ready: now 9, ready at 10"},
		{
			NewPayloadMismatchError(types.NewKey(types.OpFund, vault), hash, common.Hash{}),
			"payload mismatch for Fund: announced 0x0000000000000000000000000000000000000000000000000000000000000001, " +
				"supplied 0x0000000000000000000000000000000000000000000000000000000000000000",
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}

func Test_InvalidPayloadError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewInvalidPayloadError(types.OpPsRatio, types.RatioChange{Op: types.OpPsRatio}.Validate())

	require.ErrorIs(t, err, types.ErrInvalidPayload)

	var target *InvalidPayloadError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, types.OpPsRatio, target.OpCode)
}
