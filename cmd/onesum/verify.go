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

// ErrCorruptedPacket is returned by verify when the packet fails the check.
var ErrCorruptedPacket = errors.New("packet failed verification")

var verifyConfig config.VerifyConfig

var VerifyCmd = &cobra.Command{
	Use:   "verify [packet blocks...]",
	Short: "Verify a received packet",
	Long: `Verify sums every block of the received packet, the checksum included, and
reports the packet intact only when the sum is 11111111. The command fails
when corruption is detected.`,
	Example: `  onesum verify 11010011 10101010 01110100 00001101
  onesum verify --packet "11111111 00000000" --steps
  onesum verify --sample -o yaml`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		verifyConfig = config.LoadVerifyConfigFromCLI()
		if err := verifyConfig.Validate(); err != nil {
			return fmt.Errorf("invalid verify configuration: %w", err)
		}
		if err := verifyConfig.ValidateArgs(args); err != nil {
			return fmt.Errorf("invalid verify arguments: %w", err)
		}

		slog.Debug("Command-line arguments", "verifyConfig", verifyConfig, "args", args)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		packet, err := readPacket(args, verifyConfig.Packet, verifyConfig.InputConfig)
		if err != nil {
			return errors.WithMessage(err, "failed to read packet")
		}

		outcome, err := checksum.Verify(packet)
		if err != nil {
			return errors.WithMessage(err, "failed to verify packet")
		}

		report := models.NewVerifyReport(packet, outcome, verifyConfig.Steps)
		if err := writeOutput(cmd, verifyConfig.Output, func(ctx context.Context, h output.OutputHandler) error {
			return h.WriteVerify(ctx, &report)
		}); err != nil {
			return err
		}

		if !outcome.Valid {
			return fmt.Errorf("%w: sum %s", ErrCorruptedPacket, outcome.ReceivedSum)
		}
		return nil
	},
}

func init() {
	VerifyCmd.Flags().StringP("packet", "p", "", "received packet as one space separated string")
	VerifyCmd.Flags().Bool("steps", false, "include the verification trace")

	if err := viper.BindPFlags(VerifyCmd.Flags()); err != nil {
		slog.Error("Failed to bind VerifyCmd flags", "error", err)
	}
}
