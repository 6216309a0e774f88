// Package checksum implements the 8-bit one's-complement Internet checksum.
//
// Compute sums the data blocks with end-around carry and complements the
// result, recording every intermediate value. Verify sums a received packet
// (data followed by checksum) the same way and accepts it iff the sum is all
// ones. FlipBit produces corrupted copies of a packet for error simulation.
//
// All functions are pure: they hold no state and never modify their inputs,
// so they are safe for concurrent use.
package checksum
