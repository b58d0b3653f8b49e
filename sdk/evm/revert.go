package evm

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RevertError is returned when a call reverted with data the node reported.
type RevertError struct {
	// Reason is the decoded Error(string) or Panic(uint256) reason, if any.
	Reason string
	// Data is the raw revert data.
	Data []byte
	Err  error
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("execution reverted: %s", e.Reason)
	}

	return fmt.Sprintf("execution reverted: 0x%s", common.Bytes2Hex(e.Data))
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// decodeRevert wraps err in a RevertError when it carries revert data. Other errors are
// returned unchanged.
func decodeRevert(err error) error {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}

	var data []byte
	switch v := dataErr.ErrorData().(type) {
	case string:
		decoded, decodeErr := hexutil.Decode(v)
		if decodeErr != nil {
			return err
		}
		data = decoded
	case []byte:
		data = v
	default:
		return err
	}

	revertErr := &RevertError{Data: data, Err: err}
	if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
		revertErr.Reason = reason
	}

	return revertErr
}
