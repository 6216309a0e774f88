package models

import "github.com/manifest-network/onesum/internal/checksum"

// ComputeReport describes a checksum computation and the packet it produces.
type ComputeReport struct {
	Blocks          []string              `json:"blocks" yaml:"blocks" cbor:"blocks"`
	Checksum        string                `json:"checksum" yaml:"checksum" cbor:"checksum"`
	ChecksumDecimal int                   `json:"checksum_decimal" yaml:"checksum_decimal" cbor:"checksum_decimal"`
	Steps           []checksum.StepRecord `json:"steps" yaml:"steps" cbor:"steps"`
	Packet          string                `json:"packet" yaml:"packet" cbor:"packet"`
}

// VerifyReport describes the verification of a received packet.
type VerifyReport struct {
	Packet      string                `json:"packet" yaml:"packet" cbor:"packet"`
	Valid       bool                  `json:"valid" yaml:"valid" cbor:"valid"`
	Expected    string                `json:"expected" yaml:"expected" cbor:"expected"`
	ReceivedSum string                `json:"received_sum" yaml:"received_sum" cbor:"received_sum"`
	Message     string                `json:"message" yaml:"message" cbor:"message"`
	Steps       []checksum.StepRecord `json:"steps,omitempty" yaml:"steps,omitempty" cbor:"steps,omitempty"`
}

// Flip addresses a single bit of a packet. Block and Bit are 0-based; bit 0
// is the leftmost digit.
type Flip struct {
	Block int `json:"block" yaml:"block" cbor:"block"`
	Bit   int `json:"bit" yaml:"bit" cbor:"bit"`
}

// FlipReport describes a corrupted copy of a packet.
type FlipReport struct {
	Original  string `json:"original" yaml:"original" cbor:"original"`
	Corrupted string `json:"corrupted" yaml:"corrupted" cbor:"corrupted"`
	Flip      Flip   `json:"flip" yaml:"flip" cbor:"flip"`
}

// SweepReport summarizes the verification of every corrupted variant of a packet.
type SweepReport struct {
	Packet      string   `json:"packet" yaml:"packet" cbor:"packet"`
	Valid       bool     `json:"valid" yaml:"valid" cbor:"valid"`
	FlipsPerRun int      `json:"flips_per_variant" yaml:"flips_per_variant" cbor:"flips_per_variant"`
	Variants    int      `json:"variants" yaml:"variants" cbor:"variants"`
	Detected    int      `json:"detected" yaml:"detected" cbor:"detected"`
	Undetected  [][]Flip `json:"undetected" yaml:"undetected" cbor:"undetected"`
}

// SimulationReport chains the stages of a transmission: compute, optional
// corruption, verification.
type SimulationReport struct {
	Compute ComputeReport `json:"compute" yaml:"compute" cbor:"compute"`
	Flip    *FlipReport   `json:"flip,omitempty" yaml:"flip,omitempty" cbor:"flip,omitempty"`
	Verify  VerifyReport  `json:"verify" yaml:"verify" cbor:"verify"`
}

// NewComputeReport builds a ComputeReport from the data blocks and their result.
func NewComputeReport(blocks []checksum.Block, result *checksum.Result) ComputeReport {
	return ComputeReport{
		Blocks:          checksum.Strings(blocks),
		Checksum:        result.Checksum.String(),
		ChecksumDecimal: result.Checksum.Decimal(),
		Steps:           checksum.Records(result.Steps),
		Packet:          checksum.FormatPacket(checksum.Transmit(blocks, result.Checksum)),
	}
}

// NewVerifyReport builds a VerifyReport. The trace is only included when withSteps is set.
func NewVerifyReport(packet []checksum.Block, outcome *checksum.Outcome, withSteps bool) VerifyReport {
	r := VerifyReport{
		Packet:      checksum.FormatPacket(packet),
		Valid:       outcome.Valid,
		Expected:    checksum.AllOnes.String(),
		ReceivedSum: outcome.ReceivedSum.String(),
		Message:     outcome.Message,
	}
	if withSteps {
		r.Steps = checksum.Records(outcome.Steps)
	}
	return r
}
