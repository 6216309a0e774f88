package checksum

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// BlockWidth is the number of bits in a block.
	BlockWidth = 8

	// AllOnes is the folded sum of an uncorrupted packet.
	AllOnes Block = 0xFF
)

var (
	ErrNoBlocks        = errors.New("at least one block is required")
	ErrMalformedBlock  = errors.New("block must be exactly 8 binary digits")
	ErrOutOfRange      = errors.New("decimal block must be between 0 and 255")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Block is one 8-bit unit of checksummed data.
type Block uint8

// String returns the zero-padded binary form of the block.
func (b Block) String() string {
	return fmt.Sprintf("%08b", uint8(b))
}

// Decimal returns the unsigned value of the block.
func (b Block) Decimal() int {
	return int(b)
}

// MarshalText implements encoding.TextMarshaler so blocks encode as binary strings.
func (b Block) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Block) UnmarshalText(text []byte) error {
	parsed, err := ParseBlock(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBlock parses an exact 8-character string of '0' and '1'.
func ParseBlock(s string) (Block, error) {
	if len(s) != BlockWidth {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformedBlock)
	}

	var v uint8
	for i := 0; i < BlockWidth; i++ {
		switch s[i] {
		case '0':
			v <<= 1
		case '1':
			v = v<<1 | 1
		default:
			return 0, fmt.Errorf("%q: %w", s, ErrMalformedBlock)
		}
	}
	return Block(v), nil
}

// ParseDecimal parses a decimal value in [0, 255].
func ParseDecimal(s string) (Block, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrOutOfRange)
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%d: %w", n, ErrOutOfRange)
	}
	return Block(n), nil
}

// ParseBlocks parses every input either as binary strings or, when decimal is set, as decimal values.
func ParseBlocks(inputs []string, decimal bool) ([]Block, error) {
	parse := ParseBlock
	if decimal {
		parse = ParseDecimal
	}

	blocks := make([]Block, 0, len(inputs))
	for i, in := range inputs {
		b, err := parse(in)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// SampleBlocks returns the three demonstration blocks.
func SampleBlocks() []Block {
	return []Block{0b11010011, 0b10101010, 0b01110100}
}

// Strings formats each block as its binary string.
func Strings(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.String()
	}
	return out
}
