package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/handoff-queue/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or create queuebench configuration",
		Long: `View or create queuebench configuration.

Without arguments, prints the effective configuration as YAML, after
defaults, the config file, QUEUEBENCH_* environment variables and flags
have been merged.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long:  `Create a config file with every option set to its default value.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	configInitCmd.Flags().String("path", "", "where to write the file (default is $HOME/.config/queuebench/queuebench.yaml)")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintf(out, "# Config file: (none - using defaults)\n")
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")
	if path == "" {
		path = config.ConfigFile()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s\nUse --force to overwrite it", path)
	}

	if err := config.Default().WriteFile(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintf(out, "  2. ./queuebench.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: QUEUEBENCH_* (e.g., QUEUEBENCH_WORKLOAD_PRODUCERS)")

	return nil
}
