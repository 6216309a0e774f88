package output_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/models"
	"github.com/manifest-network/onesum/internal/output"
)

func sampleReports(t *testing.T) (models.ComputeReport, models.VerifyReport) {
	t.Helper()
	blocks := checksum.SampleBlocks()
	result, err := checksum.Compute(blocks)
	require.NoError(t, err)

	packet := checksum.Transmit(blocks, result.Checksum)
	outcome, err := checksum.Verify(packet)
	require.NoError(t, err)

	return models.NewComputeReport(blocks, result), models.NewVerifyReport(packet, outcome, true)
}

func TestNewOutputHandler(t *testing.T) {
	assert.Equal(t, []string{"cbor", "json", "text", "tsv", "yaml"}, output.Formats())

	for _, format := range output.Formats() {
		h, err := output.NewOutputHandler(format, new(bytes.Buffer))
		require.NoError(t, err, format)
		require.NoError(t, h.Close())
	}

	_, err := output.NewOutputHandler("xml", new(bytes.Buffer))
	assert.ErrorContains(t, err, "unsupported output format: xml. Valid formats are: cbor|json|text|tsv|yaml")
	assert.False(t, output.ValidFormat("xml"))
}

func TestJSONOutput(t *testing.T) {
	compute, verify := sampleReports(t)

	var buf bytes.Buffer
	h := output.NewJSONOutputHandler(&buf)
	require.NoError(t, h.WriteCompute(context.Background(), &compute))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "00001101", decoded["checksum"])
	assert.EqualValues(t, 13, decoded["checksum_decimal"])
	assert.Equal(t, "11010011 10101010 01110100 00001101", decoded["packet"])
	assert.Len(t, decoded["steps"], 4)

	buf.Reset()
	verify.Steps = nil
	require.NoError(t, h.WriteVerify(context.Background(), &verify))
	assert.NotContains(t, buf.String(), "steps")
	assert.Contains(t, buf.String(), `"valid": true`)
}

func TestYAMLOutput(t *testing.T) {
	_, verify := sampleReports(t)

	var buf bytes.Buffer
	h := output.NewYAMLOutputHandler(&buf)
	require.NoError(t, h.WriteVerify(context.Background(), &verify))
	require.NoError(t, h.Close())

	var decoded models.VerifyReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, verify, decoded)
}

func TestCBOROutputIsDeterministic(t *testing.T) {
	compute, _ := sampleReports(t)

	encode := func() []byte {
		var buf bytes.Buffer
		h, err := output.NewCBOROutputHandler(&buf)
		require.NoError(t, err)
		require.NoError(t, h.WriteCompute(context.Background(), &compute))
		return buf.Bytes()
	}
	first := encode()
	assert.Equal(t, first, encode())

	var decoded models.ComputeReport
	require.NoError(t, cbor.Unmarshal(first, &decoded))
	assert.Equal(t, compute, decoded)
}

func TestTSVOutput(t *testing.T) {
	compute, verify := sampleReports(t)

	var buf bytes.Buffer
	h := output.NewTSVOutputHandler(&buf)
	require.NoError(t, h.WriteSimulation(context.Background(), &models.SimulationReport{Compute: compute, Verify: verify}))
	require.NoError(t, h.Close())

	sections := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n\n")
	require.Len(t, sections, 2)

	steps := strings.Split(sections[0], "\n")
	require.Len(t, steps, 5)
	assert.Equal(t, "step\tdescription\toperand1\toperand2\tresult\tcarry", steps[0])
	assert.Equal(t, "2\tAdd Block 2 with carry wrap-around\t11010011\t10101010\t01111110\t1", steps[2])
	assert.Equal(t, "4\tCalculate 1's complement (flip all bits)\t11110010\t\t00001101\t", steps[4])

	assert.Equal(t,
		"packet\tvalid\texpected\treceived_sum\tmessage\n"+
			"11010011 10101010 01110100 00001101\ttrue\t11111111\t11111111\t"+checksum.MessageValid,
		sections[1])
}

func TestTSVSweepOutput(t *testing.T) {
	var buf bytes.Buffer
	h := output.NewTSVOutputHandler(&buf)
	require.NoError(t, h.WriteSweep(context.Background(), &models.SweepReport{
		Packet:      "11111111 00000000",
		Valid:       true,
		FlipsPerRun: 2,
		Variants:    120,
		Detected:    118,
		Undetected:  [][]models.Flip{{{Block: 0, Bit: 1}, {Block: 1, Bit: 1}}, {{Block: 0, Bit: 2}, {Block: 1, Bit: 2}}},
	}))

	assert.Equal(t,
		"packet\tvalid\tflips_per_variant\tvariants\tdetected\tundetected\n"+
			"11111111 00000000\ttrue\t2\t120\t118\t0:1,1:1;0:2,1:2\n",
		buf.String())
}

func TestTextOutput(t *testing.T) {
	compute, verify := sampleReports(t)

	var buf bytes.Buffer
	h := output.NewTextOutputHandler(&buf)
	require.NoError(t, h.WriteSimulation(context.Background(), &models.SimulationReport{
		Compute: compute,
		Flip: &models.FlipReport{
			Original:  "11111111 00000000",
			Corrupted: "01111111 00000000",
			Flip:      models.Flip{Block: 0, Bit: 0},
		},
		Verify: verify,
	}))

	out := buf.String()
	assert.Contains(t, out, "== Sender ==")
	assert.Contains(t, out, "== Channel ==")
	assert.Contains(t, out, "== Receiver ==")
	assert.Contains(t, out, "Data blocks: 11010011 10101010 01110100")
	assert.Contains(t, out, "Checksum: 00001101 (13)")
	assert.Contains(t, out, "Flipped bit 0 of block 0")
	assert.Contains(t, out, "Sum: 11111111 (expected 11111111)")
	assert.Contains(t, out, checksum.MessageValid)
	assert.Regexp(t, `4\s+Calculate 1's complement \(flip all bits\)\s+11110010\s+-\s+00001101\s+-`, out)
}
