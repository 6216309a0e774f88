package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/manifest-network/onesum/internal/checksum"
)

type FlipConfig struct {
	InputConfig
	Block int
	Bit   int
}

func (c FlipConfig) Validate() error {
	if err := c.InputConfig.Validate(); err != nil {
		return err
	}
	return validatePosition(c.Block, c.Bit)
}

func (c FlipConfig) ValidateArgs(args []string) error {
	return validateSource(c.Sample, len(args) > 0, "packet")
}

func LoadFlipConfigFromCLI() FlipConfig {
	return FlipConfig{
		InputConfig: LoadInputConfigFromCLI(),
		Block:       viper.GetInt("block"),
		Bit:         viper.GetInt("bit"),
	}
}

// SimulateConfig drives a full round trip. A negative FlipBlock means the
// packet crosses the channel untouched.
type SimulateConfig struct {
	InputConfig
	FlipBlock int
	FlipBit   int
}

// Corrupt reports whether a bit flip was requested.
func (c SimulateConfig) Corrupt() bool {
	return c.FlipBlock >= 0
}

func (c SimulateConfig) Validate() error {
	if err := c.InputConfig.Validate(); err != nil {
		return err
	}
	if !c.Corrupt() {
		return nil
	}
	return validatePosition(c.FlipBlock, c.FlipBit)
}

func (c SimulateConfig) ValidateArgs(args []string) error {
	return validateSource(c.Sample, len(args) > 0, "data blocks")
}

func LoadSimulateConfigFromCLI() SimulateConfig {
	return SimulateConfig{
		InputConfig: LoadInputConfigFromCLI(),
		FlipBlock:   viper.GetInt("flip-block"),
		FlipBit:     viper.GetInt("flip-bit"),
	}
}

// validatePosition checks the bounds that do not depend on the packet length.
func validatePosition(block, bit int) error {
	if block < 0 {
		return fmt.Errorf("block index must be non-negative, got %d", block)
	}
	if bit < 0 || bit >= checksum.BlockWidth {
		return fmt.Errorf("bit index must be between 0 and %d, got %d", checksum.BlockWidth-1, bit)
	}
	return nil
}
