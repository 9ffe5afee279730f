package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/handoff-queue/internal/config"
	"github.com/randomizedcoder/handoff-queue/internal/logging"
)

// Execute runs the root command. Canceling ctx stops a running workload.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the queuebench command tree. Each call returns a
// fresh tree with its own flag set; configuration is read through the
// global viper instance.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "queuebench",
		Short: "Load generator for unbounded hand-off queues",
		Long: `queuebench drives an unbounded FIFO queue with concurrent producers and
consumers, verifies that every item was delivered exactly once or dropped
at shutdown, and reports throughput.

Two implementations are available: "handoff" parks each consumer on its
own wake handle and gives items directly to the longest waiter;
"broadcast" wakes every waiter on each change and lets them re-check.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd.Root().PersistentFlags(), globalFlagKeys); err != nil {
				return err
			}
			initConfig()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/queuebench/queuebench.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", fmt.Sprintf("log level (%s)", strings.Join(config.ValidLogLevels(), ", ")))
	rootCmd.PersistentFlags().String("log-format", "", fmt.Sprintf("log format (%s)", strings.Join(logging.ValidFormats(), ", ")))

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPrimitivesCmd())

	return rootCmd
}

// globalFlagKeys maps persistent flags to viper keys
var globalFlagKeys = map[string]string{
	"config":     "config",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

func bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("queuebench")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("QUEUEBENCH")
	// e.g., QUEUEBENCH_WORKLOAD_PRODUCERS for workload.producers
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadConfig loads the effective configuration and builds the logger it
// describes, writing to the command's stderr.
func loadConfig(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return cfg, logger, nil
}
