package timelock

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/sdk/evm"
)

func buildEventsCmd(v *viper.Viper) *cobra.Command {
	var fromBlock, toBlock uint64

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List announcer events in a block range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if toBlock != 0 && toBlock < fromBlock {
				return fmt.Errorf("--to-block %d is before --from-block %d", toBlock, fromBlock)
			}

			ctx := cmd.Context()
			net, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer net.Close()

			query := ethereum.FilterQuery{
				FromBlock: new(big.Int).SetUint64(fromBlock),
				Addresses: []common.Address{net.inspector.Address()},
			}
			if toBlock != 0 {
				query.ToBlock = new(big.Int).SetUint64(toBlock)
			}

			logs, err := net.client.FilterLogs(ctx, query)
			if err != nil {
				return fmt.Errorf("failed to filter logs: %w", err)
			}

			lggr := sdk.LoggerFrom(ctx)
			out := cmd.OutOrStdout()
			for _, log := range logs {
				event, err := evm.UnpackLog(log)
				if err != nil {
					lggr.Warnf("skipping log %d of tx %s: %s", log.Index, log.TxHash.Hex(), err)
					continue
				}
				fmt.Fprintf(out, "%d\t%s\t%s\t%+v\n", log.BlockNumber, log.TxHash.Hex(), event.EventName(), event)
			}

			return nil
		},
	}

	cmd.Flags().Uint64Var(&fromBlock, "from-block", 0, "First block to scan")
	cmd.Flags().Uint64Var(&toBlock, "to-block", 0, "Last block to scan, 0 for the latest")

	return cmd
}
