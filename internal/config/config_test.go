package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/onesum/internal/config"
)

func TestInputConfigValidate(t *testing.T) {
	assert.NoError(t, config.InputConfig{Output: "json"}.Validate())
	assert.ErrorContains(t, config.InputConfig{Output: "xml"}.Validate(), "invalid output format: xml")
}

func TestComputeConfigValidateArgs(t *testing.T) {
	cfg := config.ComputeConfig{InputConfig: config.InputConfig{Output: "text"}}
	assert.NoError(t, cfg.ValidateArgs([]string{"11111111"}))
	assert.ErrorContains(t, cfg.ValidateArgs(nil), "missing data blocks (or use --sample)")

	cfg.Sample = true
	assert.NoError(t, cfg.ValidateArgs(nil))
	assert.ErrorContains(t, cfg.ValidateArgs([]string{"11111111"}), "cannot set --sample and data blocks together")
}

func TestVerifyConfigValidateArgs(t *testing.T) {
	cfg := config.VerifyConfig{Packet: "11111111 00000000"}
	assert.NoError(t, cfg.ValidateArgs(nil))
	assert.ErrorContains(t, cfg.ValidateArgs([]string{"11111111"}), "cannot set --packet and packet arguments together")

	cfg.Packet = "   "
	assert.ErrorContains(t, cfg.ValidateArgs(nil), "missing packet")
	assert.NoError(t, cfg.ValidateArgs([]string{"11111111", "00000000"}))
}

func TestFlipConfigValidate(t *testing.T) {
	tests := []struct {
		name       string
		block, bit int
		err        string
	}{
		{"first bit", 0, 0, ""},
		{"last bit", 3, 7, ""},
		{"negative block", -1, 0, "block index must be non-negative, got -1"},
		{"bit too large", 0, 8, "bit index must be between 0 and 7, got 8"},
		{"negative bit", 0, -2, "bit index must be between 0 and 7, got -2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.FlipConfig{InputConfig: config.InputConfig{Output: "text"}, Block: tt.block, Bit: tt.bit}.Validate()
			if tt.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.err)
			}
		})
	}
}

func TestSimulateConfigValidate(t *testing.T) {
	cfg := config.SimulateConfig{InputConfig: config.InputConfig{Output: "text"}, FlipBlock: -1, FlipBit: 42}
	assert.False(t, cfg.Corrupt())
	assert.NoError(t, cfg.Validate())

	cfg.FlipBlock = 1
	assert.True(t, cfg.Corrupt())
	assert.Error(t, cfg.Validate())

	cfg.FlipBit = 3
	assert.NoError(t, cfg.Validate())
}

func TestSweepConfigValidate(t *testing.T) {
	cfg := config.SweepConfig{InputConfig: config.InputConfig{Output: "yaml"}, MaxConcurrency: 4}
	assert.NoError(t, cfg.Validate())

	cfg.MaxConcurrency = 0
	assert.EqualError(t, cfg.Validate(), "max concurrency must be greater than 0")
}

func TestServeConfigValidate(t *testing.T) {
	cfg := config.ServeConfig{Addr: ":8080", MaxConcurrency: 1}
	assert.NoError(t, cfg.Validate())

	cfg.EnablePrometheus = true
	assert.EqualError(t, cfg.Validate(), "missing prometheus address")

	cfg.PrometheusAddr = ":8080"
	assert.EqualError(t, cfg.Validate(), "prometheus address must differ from the listen address")

	cfg.PrometheusAddr = ":2112"
	assert.NoError(t, cfg.Validate())

	cfg.Addr = ""
	assert.EqualError(t, cfg.Validate(), "missing listen address")
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("output", "cbor")
	viper.Set("decimal", true)
	viper.Set("block", 2)
	viper.Set("bit", 5)
	viper.Set("pairs", true)
	viper.Set("max-concurrency", 8)

	flip := config.LoadFlipConfigFromCLI()
	require.NoError(t, flip.Validate())
	assert.Equal(t, config.FlipConfig{
		InputConfig: config.InputConfig{Decimal: true, Output: "cbor"},
		Block:       2,
		Bit:         5,
	}, flip)

	sweep := config.LoadSweepConfigFromCLI()
	assert.True(t, sweep.Pairs)
	assert.Equal(t, uint(8), sweep.MaxConcurrency)
}
