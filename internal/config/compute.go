package config

import "fmt"

type ComputeConfig struct {
	InputConfig
}

func (c ComputeConfig) Validate() error {
	return c.InputConfig.Validate()
}

// ValidateArgs checks that blocks come from exactly one source.
func (c ComputeConfig) ValidateArgs(args []string) error {
	return validateSource(c.Sample, len(args) > 0, "data blocks")
}

func LoadComputeConfigFromCLI() ComputeConfig {
	return ComputeConfig{InputConfig: LoadInputConfigFromCLI()}
}

func validateSource(sample, given bool, what string) error {
	switch {
	case sample && given:
		return fmt.Errorf("cannot set --sample and %s together", what)
	case !sample && !given:
		return fmt.Errorf("missing %s (or use --sample)", what)
	}
	return nil
}
