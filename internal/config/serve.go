package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServeConfig struct {
	Addr             string
	EnablePrometheus bool
	PrometheusAddr   string
	MaxConcurrency   uint
}

func (c ServeConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("missing listen address")
	}
	if c.MaxConcurrency == 0 {
		return fmt.Errorf("max concurrency must be greater than 0")
	}
	if !c.EnablePrometheus {
		return nil
	}
	if c.PrometheusAddr == "" {
		return fmt.Errorf("missing prometheus address")
	}
	if c.PrometheusAddr == c.Addr {
		return fmt.Errorf("prometheus address must differ from the listen address")
	}
	return nil
}

func LoadServeConfigFromCLI() ServeConfig {
	return ServeConfig{
		Addr:             viper.GetString("addr"),
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
		MaxConcurrency:   viper.GetUint("sweep-concurrency"),
	}
}
