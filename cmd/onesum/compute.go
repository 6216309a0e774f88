package onesum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/config"
	"github.com/manifest-network/onesum/internal/models"
	"github.com/manifest-network/onesum/internal/output"
)

var computeConfig config.ComputeConfig

var ComputeCmd = &cobra.Command{
	Use:   "compute [blocks...]",
	Short: "Compute the checksum of data blocks",
	Long: `Compute adds the 8-bit data blocks with end-around carry and prints the
one's complement of the sum, every calculation step and the packet to transmit.`,
	Example: `  onesum compute 11010011 10101010 01110100
  onesum compute --decimal 211 170 116
  onesum compute --sample -o json`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		computeConfig = config.LoadComputeConfigFromCLI()
		if err := computeConfig.Validate(); err != nil {
			return fmt.Errorf("invalid compute configuration: %w", err)
		}
		if err := computeConfig.ValidateArgs(args); err != nil {
			return fmt.Errorf("invalid compute arguments: %w", err)
		}

		slog.Debug("Command-line arguments", "computeConfig", computeConfig, "args", args)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		blocks, err := readBlocks(args, computeConfig.InputConfig)
		if err != nil {
			return errors.WithMessage(err, "failed to read data blocks")
		}

		result, err := checksum.Compute(blocks)
		if err != nil {
			return errors.WithMessage(err, "failed to compute checksum")
		}
		slog.Debug("Computed checksum", "checksum", result.Checksum.String(), "sum", result.Sum.String())

		report := models.NewComputeReport(blocks, result)
		return writeOutput(cmd, computeConfig.Output, func(ctx context.Context, h output.OutputHandler) error {
			return h.WriteCompute(ctx, &report)
		})
	},
}
