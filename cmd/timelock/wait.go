package timelock

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	timelock "github.com/tetu-io/tetu-timelock"
	"github.com/tetu-io/tetu-timelock/sdk"
)

func buildWaitCmd(v *viper.Viper) *cobra.Command {
	var (
		opHash   string
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until an announcement can be executed",
		Long:  `Polls the announcer schedule of an opHash until its timelock has elapsed. Fails at once if the opHash is not scheduled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := parseHash(opHash)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			net, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer net.Close()

			sdk.LoggerFrom(ctx).Infof("waiting for %s on announcer %s", h.Hex(), net.inspector.Address().Hex())
			err = timelock.WaitUntilReady(ctx, net.inspector, sdk.SystemClock{}, h,
				retry.Delay(interval),
				retry.OnRetry(func(n uint, err error) {
					sdk.LoggerFrom(ctx).Debugf("attempt %d: %s", n+1, err)
				}),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is ready\n", h.Hex())

			return nil
		},
	}

	cmd.Flags().StringVar(&opHash, "hash", "", "opHash of the announcement")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Initial polling interval")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long, 0 waits forever")
	_ = cmd.MarkFlagRequired("hash")

	return cmd
}

func parseHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid opHash %q", s)
	}

	return common.BytesToHash(b), nil
}
