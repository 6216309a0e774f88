package output

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// NewCBOROutputHandler writes a CBOR sequence using core deterministic
// encoding, so identical reports always produce identical bytes.
func NewCBOROutputHandler(w io.Writer) (OutputHandler, error) {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	enc := encMode.NewEncoder(w)
	return &encoderHandler{encode: enc.Encode}, nil
}
