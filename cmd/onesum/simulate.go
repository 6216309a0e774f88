package onesum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/config"
	"github.com/manifest-network/onesum/internal/models"
	"github.com/manifest-network/onesum/internal/output"
)

var simulateConfig config.SimulateConfig

var SimulateCmd = &cobra.Command{
	Use:   "simulate [blocks...]",
	Short: "Simulate sending data blocks over a noisy channel",
	Long: `Simulate computes the checksum of the data blocks, transmits the packet,
optionally flips one bit on the way and verifies what the receiver gets.`,
	Example: `  onesum simulate --sample
  onesum simulate --flip-block 1 --flip-bit 4 11010011 10101010 01110100`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		simulateConfig = config.LoadSimulateConfigFromCLI()
		if err := simulateConfig.Validate(); err != nil {
			return fmt.Errorf("invalid simulate configuration: %w", err)
		}
		if err := simulateConfig.ValidateArgs(args); err != nil {
			return fmt.Errorf("invalid simulate arguments: %w", err)
		}

		slog.Debug("Command-line arguments", "simulateConfig", simulateConfig, "args", args)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		blocks, err := readBlocks(args, simulateConfig.InputConfig)
		if err != nil {
			return errors.WithMessage(err, "failed to read data blocks")
		}

		report, err := simulate(blocks, simulateConfig)
		if err != nil {
			return err
		}
		return writeOutput(cmd, simulateConfig.Output, func(ctx context.Context, h output.OutputHandler) error {
			return h.WriteSimulation(ctx, report)
		})
	},
}

func simulate(blocks []checksum.Block, cfg config.SimulateConfig) (*models.SimulationReport, error) {
	result, err := checksum.Compute(blocks)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to compute checksum")
	}

	sent := checksum.Transmit(blocks, result.Checksum)
	received := sent
	report := &models.SimulationReport{Compute: models.NewComputeReport(blocks, result)}

	if cfg.Corrupt() {
		received, err = checksum.FlipBit(sent, cfg.FlipBlock, cfg.FlipBit)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to flip bit")
		}
		report.Flip = &models.FlipReport{
			Original:  checksum.FormatPacket(sent),
			Corrupted: checksum.FormatPacket(received),
			Flip:      models.Flip{Block: cfg.FlipBlock, Bit: cfg.FlipBit},
		}
		slog.Debug("Corrupted packet", "block", cfg.FlipBlock, "bit", cfg.FlipBit)
	}

	outcome, err := checksum.Verify(received)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to verify packet")
	}
	report.Verify = models.NewVerifyReport(received, outcome, true)
	return report, nil
}

func init() {
	SimulateCmd.Flags().Int("flip-block", -1, "index of the block to corrupt in transit (-1 for none)")
	SimulateCmd.Flags().Int("flip-bit", 0, "index of the bit to flip in transit (0 is the leftmost)")

	if err := viper.BindPFlags(SimulateCmd.Flags()); err != nil {
		slog.Error("Failed to bind SimulateCmd flags", "error", err)
	}
}
