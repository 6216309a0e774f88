package output

import (
	"encoding/json"
	"io"
)

// NewJSONOutputHandler writes indented JSON documents, one per report.
func NewJSONOutputHandler(w io.Writer) OutputHandler {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &encoderHandler{encode: enc.Encode}
}
