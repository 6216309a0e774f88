package checksum

import "fmt"

const (
	MessageValid   = "Data integrity verified - No errors detected!"
	MessageInvalid = "Error detected - Data corruption during transmission!"
)

// Outcome is the verdict of Verify.
type Outcome struct {
	Valid       bool
	ReceivedSum Block
	Message     string

	// Steps is the display trace of the verification sum. It plays no part
	// in deciding validity.
	Steps []CalculationStep
}

// Verify folds every block of the packet, checksum included, and reports
// the packet valid iff the folded sum is all ones.
func Verify(packet []Block) (*Outcome, error) {
	if len(packet) == 0 {
		return nil, ErrNoBlocks
	}

	last := len(packet) - 1
	sum, steps := fold(packet, func(i int) string {
		if i == last {
			return "Add Checksum"
		}
		return fmt.Sprintf("Add Block %d", i+1)
	})

	outcome := &Outcome{
		Valid:       sum == AllOnes,
		ReceivedSum: sum,
		Message:     MessageInvalid,
		Steps:       steps,
	}
	if outcome.Valid {
		outcome.Message = MessageValid
	}
	return outcome, nil
}
