package checksum_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/onesum/internal/checksum"
)

func transmit(t *testing.T, blocks []checksum.Block) []checksum.Block {
	t.Helper()
	result, err := checksum.Compute(blocks)
	require.NoError(t, err)
	return checksum.Transmit(blocks, result.Checksum)
}

func TestVerifyScenarios(t *testing.T) {
	tests := []struct {
		name   string
		packet []string
		valid  bool
		sum    string
	}{
		{"all ones data", []string{"11111111", "00000000"}, true, "11111111"},
		{"zero data", []string{"00000000", "11111111"}, true, "11111111"},
		{"sample", []string{"11010011", "10101010", "01110100", "00001101"}, true, "11111111"},
		{"flipped msb", []string{"01111111", "00000000"}, false, "01111111"},
		{"all zero packet", []string{"00000000", "00000000"}, false, "00000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := checksum.Verify(mustParse(t, tt.packet...))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, outcome.Valid)
			assert.Equal(t, tt.sum, outcome.ReceivedSum.String())
			if tt.valid {
				assert.Equal(t, checksum.MessageValid, outcome.Message)
			} else {
				assert.Equal(t, checksum.MessageInvalid, outcome.Message)
			}
		})
	}
}

func TestVerifyTrace(t *testing.T) {
	outcome, err := checksum.Verify(mustParse(t, "11010011", "10101010", "01110100", "00001101"))
	require.NoError(t, err)

	descriptions := make([]string, 0, len(outcome.Steps))
	for _, s := range outcome.Steps {
		descriptions = append(descriptions, s.Description)
	}
	assert.Equal(t, []string{
		"Add Block 1",
		"Add Block 2 with carry wrap-around",
		"Add Block 3",
		"Add Checksum",
	}, descriptions)
	assert.Equal(t, outcome.ReceivedSum, outcome.Steps[len(outcome.Steps)-1].Result)
}

func TestVerifyEmpty(t *testing.T) {
	_, err := checksum.Verify(nil)
	assert.ErrorIs(t, err, checksum.ErrNoBlocks)
}

func TestComputeThenVerifyRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		packet := transmit(t, randomBlocks(r, 1+r.Intn(24)))

		outcome, err := checksum.Verify(packet)
		require.NoError(t, err)
		require.True(t, outcome.Valid, "packet %s", checksum.FormatPacket(packet))
		assert.Equal(t, "11111111", outcome.ReceivedSum.String())
	}
}

func TestSingleBitFlipDetected(t *testing.T) {
	packet := transmit(t, mustParse(t, "11111111"))
	flipped, err := checksum.FlipBit(packet, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "01111111", flipped[0].String())

	outcome, err := checksum.Verify(flipped)
	require.NoError(t, err)
	assert.False(t, outcome.Valid)
	assert.NotEqual(t, "11111111", outcome.ReceivedSum.String())
}

func TestEverySingleBitFlipDetected(t *testing.T) {
	// A single flip moves the sum by a power of two, which is never a
	// multiple of 255, so the folded sum cannot remain all ones.
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		packet := transmit(t, randomBlocks(r, 1+r.Intn(6)))
		for block := range packet {
			for bit := 0; bit < checksum.BlockWidth; bit++ {
				flipped, err := checksum.FlipBit(packet, block, bit)
				require.NoError(t, err)

				outcome, err := checksum.Verify(flipped)
				require.NoError(t, err)
				require.False(t, outcome.Valid, "flip block %d bit %d of %s", block, bit, checksum.FormatPacket(packet))
			}
		}
	}
}

func TestCompensatingDoubleFlipUndetected(t *testing.T) {
	packet := mustParse(t, "11010011", "10101010", "01110100", "00001101")

	// Bit 0 goes 1->0 in block 1 and 0->1 in block 3: -128 +128.
	corrupted, err := checksum.FlipBit(packet, 0, 0)
	require.NoError(t, err)
	corrupted, err = checksum.FlipBit(corrupted, 2, 0)
	require.NoError(t, err)
	require.NotEqual(t, packet, corrupted)

	outcome, err := checksum.Verify(corrupted)
	require.NoError(t, err)
	assert.True(t, outcome.Valid)
}
