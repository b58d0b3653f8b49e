package timelock

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func buildInfoCmd(v *viper.Viper) *cobra.Command {
	var index string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show an announcement record by log index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := parseBig(index)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			net, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer net.Close()

			length, err := net.inspector.TimeLockInfosLength(ctx)
			if err != nil {
				return err
			}
			if idx.Sign() == 0 || idx.Cmp(length) >= 0 {
				return fmt.Errorf("index %s out of range, the log holds records 1 to %d", idx, length.Int64()-1)
			}

			info, err := net.inspector.TimeLockInfo(ctx, idx)
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), idx, info, time.Now())

			return nil
		},
	}

	cmd.Flags().StringVar(&index, "index", "", "Index of the record in the announcement log")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
