package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/models"
)

const (
	stepsHeader  = "step\tdescription\toperand1\toperand2\tresult\tcarry"
	verifyHeader = "packet\tvalid\texpected\treceived_sum\tmessage"
	flipHeader   = "original\tcorrupted\tblock\tbit"
	sweepHeader  = "packet\tvalid\tflips_per_variant\tvariants\tdetected\tundetected"
)

// TSVOutputHandler writes tab separated rows, each section preceded by its
// header. Sections are separated by an empty line.
type TSVOutputHandler struct {
	writer   *bufio.Writer
	sections int
}

func NewTSVOutputHandler(w io.Writer) *TSVOutputHandler {
	return &TSVOutputHandler{writer: bufio.NewWriter(w)}
}

func (h *TSVOutputHandler) WriteCompute(_ context.Context, report *models.ComputeReport) error {
	if err := h.writeSteps(report.Steps); err != nil {
		return err
	}
	return h.flush()
}

func (h *TSVOutputHandler) WriteVerify(_ context.Context, report *models.VerifyReport) error {
	if err := h.writeVerify(report); err != nil {
		return err
	}
	return h.flush()
}

func (h *TSVOutputHandler) WriteFlip(_ context.Context, report *models.FlipReport) error {
	if err := h.writeFlip(report); err != nil {
		return err
	}
	return h.flush()
}

func (h *TSVOutputHandler) WriteSweep(_ context.Context, report *models.SweepReport) error {
	undetected := make([]string, len(report.Undetected))
	for i, flips := range report.Undetected {
		undetected[i] = formatFlips(flips)
	}
	err := h.section(sweepHeader, []string{
		report.Packet,
		strconv.FormatBool(report.Valid),
		strconv.Itoa(report.FlipsPerRun),
		strconv.Itoa(report.Variants),
		strconv.Itoa(report.Detected),
		strings.Join(undetected, ";"),
	})
	if err != nil {
		return err
	}
	return h.flush()
}

func (h *TSVOutputHandler) WriteSimulation(_ context.Context, report *models.SimulationReport) error {
	if err := h.writeSteps(report.Compute.Steps); err != nil {
		return err
	}
	if report.Flip != nil {
		if err := h.writeFlip(report.Flip); err != nil {
			return err
		}
	}
	if err := h.writeVerify(&report.Verify); err != nil {
		return err
	}
	return h.flush()
}

func (h *TSVOutputHandler) Close() error {
	return h.flush()
}

func (h *TSVOutputHandler) writeSteps(steps []checksum.StepRecord) error {
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{strconv.Itoa(s.Step), s.Description, s.Operand1, s.Operand2, s.Result, s.Carry}
	}
	return h.section(stepsHeader, rows...)
}

func (h *TSVOutputHandler) writeVerify(report *models.VerifyReport) error {
	return h.section(verifyHeader, []string{
		report.Packet,
		strconv.FormatBool(report.Valid),
		report.Expected,
		report.ReceivedSum,
		report.Message,
	})
}

func (h *TSVOutputHandler) writeFlip(report *models.FlipReport) error {
	return h.section(flipHeader, []string{
		report.Original,
		report.Corrupted,
		strconv.Itoa(report.Flip.Block),
		strconv.Itoa(report.Flip.Bit),
	})
}

func (h *TSVOutputHandler) section(header string, rows ...[]string) error {
	if h.sections > 0 {
		if _, err := h.writer.WriteString("\n"); err != nil {
			return fmt.Errorf("failed to write TSV section separator: %w", err)
		}
	}
	h.sections++

	if _, err := h.writer.WriteString(header + "\n"); err != nil {
		return fmt.Errorf("failed to write TSV header: %w", err)
	}
	for _, row := range rows {
		if _, err := h.writer.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return fmt.Errorf("failed to write TSV row: %w", err)
		}
	}
	return nil
}

func (h *TSVOutputHandler) flush() error {
	if err := h.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush TSV output: %w", err)
	}
	return nil
}

// formatFlips renders flips as "block:bit" pairs joined by commas.
func formatFlips(flips []models.Flip) string {
	parts := make([]string, len(flips))
	for i, f := range flips {
		parts[i] = fmt.Sprintf("%d:%d", f.Block, f.Bit)
	}
	return strings.Join(parts, ",")
}
