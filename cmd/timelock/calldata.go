package timelock

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tetu-io/tetu-timelock/sdk/evm"
	"github.com/tetu-io/tetu-timelock/types"
)

func buildCalldataCmd(v *viper.Viper) *cobra.Command {
	var indexes []string

	cmd := &cobra.Command{
		Use:   "calldata",
		Short: "Build the execute call of announced records",
		Long: `Reads the records at the given log indexes and prints the transaction executing them.
Several indexes are executed as one batch and must share a batch opcode.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			net, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer net.Close()

			infos := make([]types.TimeLockInfo, 0, len(indexes))
			for _, s := range indexes {
				idx, err := parseBig(s)
				if err != nil {
					return err
				}
				info, err := net.inspector.TimeLockInfo(ctx, idx)
				if err != nil {
					return err
				}
				if info.ReadyAt == 0 {
					return fmt.Errorf("record %s is no longer pending", idx)
				}
				infos = append(infos, info)
			}

			call, err := evm.EncodeExecute(infos...)
			if err != nil {
				return err
			}
			to, err := net.book.Get(net.selector, call.To)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "to:     %s\n", to)
			fmt.Fprintf(out, "method: %s\n", call.Method)
			fmt.Fprintf(out, "data:   %s\n", hexutil.Encode(call.Data))

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&indexes, "index", nil, "Log index of a record to execute, repeatable")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
