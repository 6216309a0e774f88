package onesum

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/config"
	"github.com/manifest-network/onesum/internal/output"
)

// readBlocks returns the data blocks named on the command line, or the
// sample blocks when --sample is set.
func readBlocks(args []string, cfg config.InputConfig) ([]checksum.Block, error) {
	if cfg.Sample {
		return checksum.SampleBlocks(), nil
	}
	return checksum.ParseBlocks(args, cfg.Decimal)
}

// readPacket returns the packet named on the command line or by the packet
// string. With --sample it is the sample blocks followed by their checksum.
func readPacket(args []string, packet string, cfg config.InputConfig) ([]checksum.Block, error) {
	if cfg.Sample {
		blocks := checksum.SampleBlocks()
		result, err := checksum.Compute(blocks)
		if err != nil {
			return nil, err
		}
		return checksum.Transmit(blocks, result.Checksum), nil
	}
	if strings.TrimSpace(packet) != "" {
		args = strings.Fields(packet)
	}
	return checksum.ParseBlocks(args, cfg.Decimal)
}

// writeOutput hands a handler for format, writing to the command's output,
// to write and closes it afterwards.
func writeOutput(cmd *cobra.Command, format string, write func(ctx context.Context, h output.OutputHandler) error) error {
	outputHandler, err := output.NewOutputHandler(format, cmd.OutOrStdout())
	if err != nil {
		return errors.WithMessage(err, "failed to create output handler")
	}

	if err := write(cmd.Context(), outputHandler); err != nil {
		_ = outputHandler.Close()
		return errors.WithMessage(err, "failed to write output")
	}
	return errors.WithMessage(outputHandler.Close(), "failed to close output handler")
}
