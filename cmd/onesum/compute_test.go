package onesum_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/models"
)

func TestComputeCmd(t *testing.T) {
	output, err := executeCommand(t, "compute", "11010011", "10101010", "01110100")
	require.NoError(t, err)
	assert.Contains(t, output, "Data blocks: 11010011 10101010 01110100")
	assert.Contains(t, output, "Add Block 2 with carry wrap-around")
	assert.Contains(t, output, "Checksum: 00001101 (13)")
	assert.Contains(t, output, "Transmitted packet: 11010011 10101010 01110100 00001101")
}

func TestComputeCmdSample(t *testing.T) {
	sample, err := executeCommand(t, "compute", "--sample")
	require.NoError(t, err)

	explicit, err := executeCommand(t, "compute", "11010011", "10101010", "01110100")
	require.NoError(t, err)
	assert.Equal(t, explicit, sample)
}

func TestComputeCmdDecimalJSON(t *testing.T) {
	output, err := executeCommand(t, "compute", "--decimal", "-o", "json", "211", "170", "116")
	require.NoError(t, err)

	var report models.ComputeReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, []string{"11010011", "10101010", "01110100"}, report.Blocks)
	assert.Equal(t, "00001101", report.Checksum)
	assert.Equal(t, 13, report.ChecksumDecimal)
	assert.Len(t, report.Steps, 4)
}

func TestComputeCmdErrors(t *testing.T) {
	_, err := executeCommand(t, "compute")
	assert.ErrorContains(t, err, "missing data blocks (or use --sample)")

	_, err = executeCommand(t, "compute", "--sample", "11111111")
	assert.ErrorContains(t, err, "cannot set --sample and data blocks together")

	_, err = executeCommand(t, "compute", "11111111", "1101")
	assert.ErrorIs(t, err, checksum.ErrMalformedBlock)
	assert.ErrorContains(t, err, "block 2")

	_, err = executeCommand(t, "compute", "--decimal", "256")
	assert.ErrorIs(t, err, checksum.ErrOutOfRange)
}
