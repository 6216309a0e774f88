package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// NewYAMLOutputHandler writes a YAML stream. Close must be called to flush it.
func NewYAMLOutputHandler(w io.Writer) OutputHandler {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	// The encoder cannot end a stream it never started.
	var started bool
	return &encoderHandler{
		encode: func(v any) error {
			started = true
			return enc.Encode(v)
		},
		close: func() error {
			if !started {
				return nil
			}
			return enc.Close()
		},
	}
}
