package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/types"
)

var (
	announcerAddr  = common.HexToAddress("0xa0")
	controllerAddr = common.HexToAddress("0xc0")
	governanceAddr = common.HexToAddress("0x60")
)

// panicOutOfBounds is the revert data of a Solidity array index out of bounds.
var panicOutOfBounds = hexutil.MustDecode(
	"0x4e487b710000000000000000000000000000000000000000000000000000000000000032")

// chainBackend answers eth_call requests against an in-process inspector, encoding results
// the way a deployed Announcer does.
type chainBackend struct {
	inspector sdk.TimelockInspector
	err       error
	calls     int
}

func (b *chainBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (b *chainBackend) CallContract(ctx context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	if call.To == nil || *call.To != announcerAddr {
		return nil, errors.New("call to unknown contract")
	}

	method, err := announcerABI.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}

	var result any
	switch method.Name {
	case "timeLockIndexes":
		result, err = b.inspector.TimeLockIndexes(ctx, types.OpCode(args[0].(uint8)))
	case "multiTimeLockIndexes":
		result, err = b.inspector.MultiTimeLockIndexes(ctx, types.OpCode(args[0].(uint8)), args[1].(common.Address))
	case "timeLockSchedule":
		result, err = b.inspector.TimeLockSchedule(ctx, args[0].([32]byte))
	case "timeLockInfosLength":
		result, err = b.inspector.TimeLockInfosLength(ctx)
	case "timeLock":
		var d time.Duration
		d, err = b.inspector.TimeLock(ctx)
		result = big.NewInt(int64(d / time.Second))
	case "timeLockInfo":
		var info types.TimeLockInfo
		info, err = b.inspector.TimeLockInfo(ctx, args[0].(*big.Int))
		if err != nil {
			return nil, &revertDataError{data: hexutil.Encode(panicOutOfBounds)}
		}
		result = onchainTimeLockInfo{
			OpCode:    uint8(info.OpCode),
			OpHash:    info.OpHash,
			Target:    info.Target,
			AdrValues: info.AdrValues,
			NumValues: info.NumValues,
		}
	default:
		return nil, fmt.Errorf("unexpected method %s", method.Name)
	}
	if err != nil {
		return nil, err
	}

	return method.Outputs.Pack(result)
}

// revertDataError mimics the JSON-RPC error returned for a reverted eth_call.
type revertDataError struct {
	data string
}

func (e *revertDataError) Error() string  { return "execution reverted" }
func (e *revertDataError) ErrorData() any { return e.data }

type allowAll struct{}

func (allowAll) IsGovernance(context.Context, common.Address) (bool, error) { return true, nil }

type staticResolver struct{}

func (staticResolver) Address(context.Context, types.ContractType) (common.Address, error) {
	return controllerAddr, nil
}
