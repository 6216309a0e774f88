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

var flipConfig config.FlipConfig

var FlipCmd = &cobra.Command{
	Use:   "flip [packet blocks...]",
	Short: "Flip a single bit of a packet",
	Long: `Flip inverts one bit of a packet to simulate a transmission error. Blocks and
bits are numbered from 0; bit 0 is the leftmost digit.`,
	Example: `  onesum flip --block 0 --bit 0 11111111 00000000
  onesum flip --sample --block 2 --bit 7`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		flipConfig = config.LoadFlipConfigFromCLI()
		if err := flipConfig.Validate(); err != nil {
			return fmt.Errorf("invalid flip configuration: %w", err)
		}
		if err := flipConfig.ValidateArgs(args); err != nil {
			return fmt.Errorf("invalid flip arguments: %w", err)
		}

		slog.Debug("Command-line arguments", "flipConfig", flipConfig, "args", args)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		packet, err := readPacket(args, "", flipConfig.InputConfig)
		if err != nil {
			return errors.WithMessage(err, "failed to read packet")
		}

		corrupted, err := checksum.FlipBit(packet, flipConfig.Block, flipConfig.Bit)
		if err != nil {
			return errors.WithMessage(err, "failed to flip bit")
		}

		report := models.FlipReport{
			Original:  checksum.FormatPacket(packet),
			Corrupted: checksum.FormatPacket(corrupted),
			Flip:      models.Flip{Block: flipConfig.Block, Bit: flipConfig.Bit},
		}
		return writeOutput(cmd, flipConfig.Output, func(ctx context.Context, h output.OutputHandler) error {
			return h.WriteFlip(ctx, &report)
		})
	},
}

func init() {
	FlipCmd.Flags().IntP("block", "b", 0, "index of the block to corrupt")
	FlipCmd.Flags().Int("bit", 0, "index of the bit to flip (0 is the leftmost)")

	if err := viper.BindPFlags(FlipCmd.Flags()); err != nil {
		slog.Error("Failed to bind FlipCmd flags", "error", err)
	}
}
