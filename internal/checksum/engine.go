package checksum

import (
	"fmt"
	"strconv"
)

// StepKind identifies the arithmetic performed by a CalculationStep.
type StepKind uint8

const (
	StepAdd StepKind = iota + 1
	StepAddWithCarry
	StepComplement
)

func (k StepKind) String() string {
	switch k {
	case StepAdd:
		return "add"
	case StepAddWithCarry:
		return "add-carry"
	case StepComplement:
		return "complement"
	default:
		return "unknown"
	}
}

// CalculationStep records one operation of a checksum computation.
// Steps are numbered from 1 in execution order.
type CalculationStep struct {
	Number      int
	Kind        StepKind
	Description string
	Operand1    Block
	Operand2    Block
	Result      Block
	Carry       uint8
}

// StepRecord is the presentation form of a CalculationStep.
type StepRecord struct {
	Step        int    `json:"step" yaml:"step" cbor:"step"`
	Description string `json:"description" yaml:"description" cbor:"description"`
	Operand1    string `json:"operand1" yaml:"operand1" cbor:"operand1"`
	Operand2    string `json:"operand2" yaml:"operand2" cbor:"operand2"`
	Result      string `json:"result" yaml:"result" cbor:"result"`
	Carry       string `json:"carry" yaml:"carry" cbor:"carry"`
}

// Record renders the step with 8-bit strings. The complement step has an
// empty second operand and an empty carry; addition steps report "0" when
// no carry wrapped around.
func (s CalculationStep) Record() StepRecord {
	r := StepRecord{
		Step:        s.Number,
		Description: s.Description,
		Operand1:    s.Operand1.String(),
		Result:      s.Result.String(),
	}
	if s.Kind != StepComplement {
		r.Operand2 = s.Operand2.String()
		r.Carry = strconv.Itoa(int(s.Carry))
	}
	return r
}

// Records renders every step.
func Records(steps []CalculationStep) []StepRecord {
	out := make([]StepRecord, len(steps))
	for i, s := range steps {
		out[i] = s.Record()
	}
	return out
}

// Result is the outcome of Compute.
type Result struct {
	// Checksum is the one's complement of Sum.
	Checksum Block

	// Sum is the end-around-carry sum of the data blocks.
	Sum Block

	Steps []CalculationStep
}

// Compute folds the blocks into an end-around-carry sum and returns its
// one's complement together with the full step trace. The trace has one
// step per block followed by the complement step.
func Compute(blocks []Block) (*Result, error) {
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}

	sum, steps := fold(blocks, func(i int) string {
		return fmt.Sprintf("Add Block %d", i+1)
	})

	complement := ^sum
	steps = append(steps, CalculationStep{
		Number:      len(steps) + 1,
		Kind:        StepComplement,
		Description: "Calculate 1's complement (flip all bits)",
		Operand1:    sum,
		Result:      complement,
	})

	return &Result{Checksum: complement, Sum: sum, Steps: steps}, nil
}

// addWithCarry adds b to sum and folds any carry-out back into the low byte.
// sum is at most 255 on entry, so the raw total is at most 510, the carry is
// at most 1 and a single fold always lands back in [0, 255].
func addWithCarry(sum Block, b Block) (Block, uint8) {
	total := uint16(sum) + uint16(b)
	if total <= 0xFF {
		return Block(total), 0
	}
	carry := total >> BlockWidth
	return Block(total&0xFF + carry), uint8(carry)
}

// fold runs the end-around-carry sum over blocks, labelling each addition
// step with describe(i). A "with carry wrap-around" suffix is appended when
// the addition overflowed.
func fold(blocks []Block, describe func(i int) string) (Block, []CalculationStep) {
	var sum Block
	steps := make([]CalculationStep, 0, len(blocks)+1)

	for i, b := range blocks {
		previous := sum

		var carry uint8
		sum, carry = addWithCarry(sum, b)

		step := CalculationStep{
			Number:      i + 1,
			Kind:        StepAdd,
			Description: describe(i),
			Operand1:    previous,
			Operand2:    b,
			Result:      sum,
			Carry:       carry,
		}
		if carry > 0 {
			step.Kind = StepAddWithCarry
			step.Description += " with carry wrap-around"
		}
		steps = append(steps, step)
	}

	return sum, steps
}
