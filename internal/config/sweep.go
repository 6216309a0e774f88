package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type SweepConfig struct {
	InputConfig
	Pairs          bool
	MaxConcurrency uint
	Progress       bool
}

func (c SweepConfig) Validate() error {
	if err := c.InputConfig.Validate(); err != nil {
		return err
	}
	if c.MaxConcurrency == 0 {
		return fmt.Errorf("max concurrency must be greater than 0")
	}
	return nil
}

func (c SweepConfig) ValidateArgs(args []string) error {
	return validateSource(c.Sample, len(args) > 0, "packet")
}

func LoadSweepConfigFromCLI() SweepConfig {
	return SweepConfig{
		InputConfig:    LoadInputConfigFromCLI(),
		Pairs:          viper.GetBool("pairs"),
		MaxConcurrency: viper.GetUint("max-concurrency"),
		Progress:       viper.GetBool("progress"),
	}
}
