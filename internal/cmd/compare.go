package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/handoff-queue/internal/workload"
)

func newCompareCmd() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the same workload against every queue implementation",
		Long: `Run the same workload against every queue implementation in turn and
print the cost per item, with the speedup of the faster one.`,
		Args: cobra.NoArgs,
		RunE: runCompare,
	}

	keys := addWorkloadFlags(compareCmd)
	compareCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags(), keys)
	}

	return compareCmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reports, err := workload.Compare(cmd.Context(), cfg.WorkloadRun(), logger)
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	for _, r := range reports {
		if err := r.Verify(); err != nil {
			return fmt.Errorf("%s: integrity check failed: %w", r.Impl, err)
		}
	}

	return writeComparison(cmd.OutOrStdout(), cfg.Report.Output, reports)
}
