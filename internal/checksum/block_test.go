package checksum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/onesum/internal/checksum"
)

func TestParseBlock(t *testing.T) {
	tests := []struct {
		in   string
		want checksum.Block
		ok   bool
	}{
		{"00000000", 0, true},
		{"11111111", 255, true},
		{"11010011", 211, true},
		{"00000001", 1, true},
		{"1101001", 0, false},
		{"110100110", 0, false},
		{"1101001x", 0, false},
		{" 1010101", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := checksum.ParseBlock(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, checksum.ErrMalformedBlock, "ParseBlock(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseBlock(%q)", tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}
}

func TestParseDecimal(t *testing.T) {
	b, err := checksum.ParseDecimal("211")
	require.NoError(t, err)
	assert.Equal(t, "11010011", b.String())
	assert.Equal(t, 211, b.Decimal())

	b, err = checksum.ParseDecimal("0")
	require.NoError(t, err)
	assert.Equal(t, "00000000", b.String())

	for _, in := range []string{"256", "-1", "abc", ""} {
		_, err := checksum.ParseDecimal(in)
		assert.ErrorIs(t, err, checksum.ErrOutOfRange, "ParseDecimal(%q)", in)
	}
}

func TestParseBlocksReportsPosition(t *testing.T) {
	_, err := checksum.ParseBlocks([]string{"11111111", "2"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, checksum.ErrMalformedBlock)
	assert.Contains(t, err.Error(), "block 2")

	blocks, err := checksum.ParseBlocks([]string{"1", "255"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"00000001", "11111111"}, checksum.Strings(blocks))
}

func TestBlockText(t *testing.T) {
	text, err := checksum.Block(5).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "00000101", string(text))

	var b checksum.Block
	require.NoError(t, b.UnmarshalText([]byte("10000001")))
	assert.Equal(t, checksum.Block(129), b)
	assert.Error(t, b.UnmarshalText([]byte("2")))
}

func TestSampleBlocks(t *testing.T) {
	assert.Equal(t, []string{"11010011", "10101010", "01110100"}, checksum.Strings(checksum.SampleBlocks()))
}
