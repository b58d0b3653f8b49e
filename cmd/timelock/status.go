package timelock

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tetu-io/tetu-timelock/types"
)

func buildStatusCmd(v *viper.Viper) *cobra.Command {
	var (
		opCode string
		target string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pending announcement of an opcode",
		Long:  `Looks up the live announcement of an opcode, or of an opcode and target contract for batch opcodes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := types.ParseOpCode(opCode)
			if err != nil {
				return err
			}
			var targetAddr common.Address
			if op.MultiTarget() {
				if target == "" {
					return fmt.Errorf("%s is tracked per target, --target is required", op)
				}
				if targetAddr, err = parseAddress(target); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			net, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer net.Close()

			var index *big.Int
			if op.MultiTarget() {
				index, err = net.inspector.MultiTimeLockIndexes(ctx, op, targetAddr)
			} else {
				index, err = net.inspector.TimeLockIndexes(ctx, op)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if index.Sign() == 0 {
				fmt.Fprintf(out, "no pending %s announcement\n", types.NewKey(op, targetAddr))
				return nil
			}

			info, err := net.inspector.TimeLockInfo(ctx, index)
			if err != nil {
				return err
			}
			printInfo(out, index, info, time.Now())

			return nil
		},
	}

	cmd.Flags().StringVar(&opCode, "opcode", "", "Opcode number or name, e.g. 9 or PsRatio")
	cmd.Flags().StringVar(&target, "target", "", "Target contract of a batch opcode")
	_ = cmd.MarkFlagRequired("opcode")

	return cmd
}
