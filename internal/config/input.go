package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/manifest-network/onesum/internal/output"
)

// InputConfig holds the flags shared by every command that reads blocks.
type InputConfig struct {
	Decimal bool
	Sample  bool
	Output  string
}

func (c InputConfig) Validate() error {
	if !output.ValidFormat(c.Output) {
		return fmt.Errorf("invalid output format: %s", c.Output)
	}
	return nil
}

func LoadInputConfigFromCLI() InputConfig {
	return InputConfig{
		Decimal: viper.GetBool("decimal"),
		Sample:  viper.GetBool("sample"),
		Output:  viper.GetString("output"),
	}
}
