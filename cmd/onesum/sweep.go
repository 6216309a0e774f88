package onesum

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/onesum/internal/config"
	"github.com/manifest-network/onesum/internal/output"
	"github.com/manifest-network/onesum/internal/sweep"
)

var sweepConfig config.SweepConfig

var SweepCmd = &cobra.Command{
	Use:   "sweep [packet blocks...]",
	Short: "Check which bit flips the checksum detects",
	Long: `Sweep verifies every corrupted variant of a packet: every single bit flip, or
with --pairs every pair of bit flips, and lists the corruptions that go
undetected.`,
	Example: `  onesum sweep --sample
  onesum sweep --pairs --progress 11111111 00000000`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		sweepConfig = config.LoadSweepConfigFromCLI()
		if err := sweepConfig.Validate(); err != nil {
			return fmt.Errorf("invalid sweep configuration: %w", err)
		}
		if err := sweepConfig.ValidateArgs(args); err != nil {
			return fmt.Errorf("invalid sweep arguments: %w", err)
		}

		slog.Debug("Command-line arguments", "sweepConfig", sweepConfig, "args", args)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		packet, err := readPacket(args, "", sweepConfig.InputConfig)
		if err != nil {
			return errors.WithMessage(err, "failed to read packet")
		}

		var progress io.Writer
		if sweepConfig.Progress {
			progress = cmd.ErrOrStderr()
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		handleInterrupt(cancel)

		report, err := sweep.Run(ctx, packet, sweep.Options{
			Pairs:          sweepConfig.Pairs,
			MaxConcurrency: sweepConfig.MaxConcurrency,
			Progress:       progress,
		})
		if err != nil {
			return errors.WithMessage(err, "failed to sweep packet")
		}

		slog.Info("Sweep complete", "variants", report.Variants, "undetected", len(report.Undetected))
		return writeOutput(cmd, sweepConfig.Output, func(ctx context.Context, h output.OutputHandler) error {
			return h.WriteSweep(ctx, report)
		})
	},
}

func init() {
	SweepCmd.Flags().Bool("pairs", false, "flip every pair of bits instead of every single bit")
	SweepCmd.Flags().UintP("max-concurrency", "c", 100, "Maximum number of variants verified concurrently (advanced)")
	SweepCmd.Flags().Bool("progress", false, "show a progress bar on stderr")

	if err := viper.BindPFlags(SweepCmd.Flags()); err != nil {
		slog.Error("Failed to bind SweepCmd flags", "error", err)
	}
}
