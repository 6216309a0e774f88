package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type VerifyConfig struct {
	InputConfig
	Packet string
	Steps  bool
}

func (c VerifyConfig) Validate() error {
	return c.InputConfig.Validate()
}

// ValidateArgs checks that the packet comes from exactly one of the
// positional arguments, --packet or --sample.
func (c VerifyConfig) ValidateArgs(args []string) error {
	packet := strings.TrimSpace(c.Packet) != ""
	if packet && len(args) > 0 {
		return fmt.Errorf("cannot set --packet and packet arguments together")
	}
	return validateSource(c.Sample, packet || len(args) > 0, "packet")
}

func LoadVerifyConfigFromCLI() VerifyConfig {
	return VerifyConfig{
		InputConfig: LoadInputConfigFromCLI(),
		Packet:      viper.GetString("packet"),
		Steps:       viper.GetBool("steps"),
	}
}
