package sdk

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/types"
)

// TimelockInspector exposes the read accessors of an announcer.
type TimelockInspector interface {
	TimeLockIndexes(ctx context.Context, op types.OpCode) (*big.Int, error)
	MultiTimeLockIndexes(ctx context.Context, op types.OpCode, target common.Address) (*big.Int, error)
	TimeLockInfo(ctx context.Context, index *big.Int) (types.TimeLockInfo, error)
	TimeLockSchedule(ctx context.Context, opHash common.Hash) (*big.Int, error)
	TimeLock(ctx context.Context) (time.Duration, error)
	TimeLockInfosLength(ctx context.Context) (*big.Int, error)
}
