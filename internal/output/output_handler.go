package output

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/manifest-network/onesum/internal/models"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTSV  = "tsv"
	FormatCBOR = "cbor"
)

type OutputHandler interface {
	WriteCompute(ctx context.Context, report *models.ComputeReport) error
	WriteVerify(ctx context.Context, report *models.VerifyReport) error
	WriteFlip(ctx context.Context, report *models.FlipReport) error
	WriteSweep(ctx context.Context, report *models.SweepReport) error
	WriteSimulation(ctx context.Context, report *models.SimulationReport) error
	Close() error
}

var factories = map[string]func(io.Writer) (OutputHandler, error){
	FormatText: func(w io.Writer) (OutputHandler, error) { return NewTextOutputHandler(w), nil },
	FormatJSON: func(w io.Writer) (OutputHandler, error) { return NewJSONOutputHandler(w), nil },
	FormatYAML: func(w io.Writer) (OutputHandler, error) { return NewYAMLOutputHandler(w), nil },
	FormatTSV:  func(w io.Writer) (OutputHandler, error) { return NewTSVOutputHandler(w), nil },
	FormatCBOR: func(w io.Writer) (OutputHandler, error) { return NewCBOROutputHandler(w) },
}

// Formats returns the supported output formats in sorted order.
func Formats() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	_, ok := factories[format]
	return ok
}

// NewOutputHandler returns the handler for format writing to w.
func NewOutputHandler(format string, w io.Writer) (OutputHandler, error) {
	factory, ok := factories[format]
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s. Valid formats are: %s", format, strings.Join(Formats(), "|"))
	}
	return factory(w)
}

// encoderHandler writes every report as one document of a structured encoding.
type encoderHandler struct {
	encode func(v any) error
	close  func() error
}

func (h *encoderHandler) WriteCompute(_ context.Context, report *models.ComputeReport) error {
	return h.encode(report)
}

func (h *encoderHandler) WriteVerify(_ context.Context, report *models.VerifyReport) error {
	return h.encode(report)
}

func (h *encoderHandler) WriteFlip(_ context.Context, report *models.FlipReport) error {
	return h.encode(report)
}

func (h *encoderHandler) WriteSweep(_ context.Context, report *models.SweepReport) error {
	return h.encode(report)
}

func (h *encoderHandler) WriteSimulation(_ context.Context, report *models.SimulationReport) error {
	return h.encode(report)
}

func (h *encoderHandler) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}
