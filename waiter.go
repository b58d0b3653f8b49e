package timelock

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/internal/utils/safecast"
	"github.com/tetu-io/tetu-timelock/sdk"
)

var defaultWaitOpts = func(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(time.Minute),
		retry.MaxDelay(10 * time.Minute),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
}

// WaitUntilReady polls the announcer schedule until the announcement identified by opHash can
// be executed. It fails immediately when opHash is not scheduled. By default it polls until ctx
// is done; opts are appended to the defaults.
func WaitUntilReady(
	ctx context.Context,
	inspector sdk.TimelockInspector,
	clock sdk.Clock,
	opHash common.Hash,
	opts ...retry.Option,
) error {
	lggr := sdk.LoggerFrom(ctx)

	return retry.Do(func() error {
		schedule, err := inspector.TimeLockSchedule(ctx, opHash)
		if err != nil {
			return err
		}
		if schedule.Sign() == 0 {
			return retry.Unrecoverable(NewNoSuchScheduleError(opHash))
		}

		readyAt, err := safecast.BigToUint64(schedule)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		now, err := unixNow(clock)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		if now < readyAt {
			lggr.Debugf("announcement %s ready in %ds", opHash.Hex(), readyAt-now)
			return NewScheduleNotReadyError(opHash, now, readyAt)
		}

		return nil
	}, append(defaultWaitOpts(ctx), opts...)...)
}
