package timelock

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tetu-io/tetu-timelock/sdk"
)

const envPrefix = "TETU"

// BuildTimelockCmd returns the root command. Persistent flags may also be set through TETU_*
// environment variables, read from .env when present.
func BuildTimelockCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "timelock",
		Short:        "Inspect Tetu governance timelock announcements",
		Long:         ``,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(); err != nil {
				return err
			}

			logger, err := newLogger(v.GetBool("verbose"))
			if err != nil {
				return err
			}
			cmd.SetContext(sdk.ContextWithLogger(cmd.Context(), logger))

			return nil
		},
	}

	addPersistentFlags(cmd.PersistentFlags())
	// binding only fails for a nil flag
	_ = v.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(buildHashCmd())
	cmd.AddCommand(buildStatusCmd(v))
	cmd.AddCommand(buildInfoCmd(v))
	cmd.AddCommand(buildWaitCmd(v))
	cmd.AddCommand(buildEventsCmd(v))
	cmd.AddCommand(buildCalldataCmd(v))

	return cmd
}

func addPersistentFlags(flags *pflag.FlagSet) {
	flags.Uint64("selector", 0, "Chain selector of the network the announcer is deployed on")
	flags.String("address-book", "addresses.yaml", "Path of the address book file")
	flags.String("version", ">= 1.0.0", "Version constraint the announcer must satisfy")
	flags.Bool("verbose", false, "Enable debug logging")
}

func loadDotEnv() error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func newLogger(verbose bool) (sdk.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
