package checksum

import (
	"fmt"
	"strings"
)

// Transmit returns a new packet made of the data blocks followed by the checksum.
func Transmit(blocks []Block, checksum Block) []Block {
	packet := make([]Block, 0, len(blocks)+1)
	packet = append(packet, blocks...)
	return append(packet, checksum)
}

// FormatPacket joins the binary forms of the blocks with single spaces.
func FormatPacket(packet []Block) string {
	return strings.Join(Strings(packet), " ")
}

// ParsePacket splits a whitespace separated packet into blocks.
func ParsePacket(s string) ([]Block, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrNoBlocks
	}
	return ParseBlocks(fields, false)
}

// FlipBit returns a copy of packet with one bit inverted. Bit 0 is the
// leftmost (most significant) digit of the block's binary form. The input
// packet is never modified.
func FlipBit(packet []Block, blockIndex, bitIndex int) ([]Block, error) {
	if blockIndex < 0 || blockIndex >= len(packet) {
		return nil, fmt.Errorf("block index %d (packet has %d blocks): %w", blockIndex, len(packet), ErrIndexOutOfRange)
	}
	if bitIndex < 0 || bitIndex >= BlockWidth {
		return nil, fmt.Errorf("bit index %d (must be 0-%d): %w", bitIndex, BlockWidth-1, ErrIndexOutOfRange)
	}

	flipped := make([]Block, len(packet))
	copy(flipped, packet)
	flipped[blockIndex] ^= Block(1 << (BlockWidth - 1 - bitIndex))
	return flipped, nil
}
