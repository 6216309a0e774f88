package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/models"
)

// TextOutputHandler renders reports for a terminal. Step traces are printed
// as aligned tables.
type TextOutputHandler struct {
	w io.Writer
}

func NewTextOutputHandler(w io.Writer) *TextOutputHandler {
	return &TextOutputHandler{w: w}
}

func (h *TextOutputHandler) WriteCompute(_ context.Context, report *models.ComputeReport) error {
	return h.writeCompute(report)
}

func (h *TextOutputHandler) WriteVerify(_ context.Context, report *models.VerifyReport) error {
	return h.writeVerify(report)
}

func (h *TextOutputHandler) WriteFlip(_ context.Context, report *models.FlipReport) error {
	return h.writeFlip(report)
}

func (h *TextOutputHandler) WriteSweep(_ context.Context, report *models.SweepReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Packet:              %s\n", report.Packet)
	fmt.Fprintf(&b, "Packet valid:        %t\n", report.Valid)
	fmt.Fprintf(&b, "Flips per variant:   %d\n", report.FlipsPerRun)
	fmt.Fprintf(&b, "Variants checked:    %d\n", report.Variants)
	fmt.Fprintf(&b, "Errors detected:     %d\n", report.Detected)
	fmt.Fprintf(&b, "Errors undetected:   %d\n", len(report.Undetected))
	for _, flips := range report.Undetected {
		fmt.Fprintf(&b, "  undetected: %s\n", formatFlips(flips))
	}
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *TextOutputHandler) WriteSimulation(_ context.Context, report *models.SimulationReport) error {
	if _, err := fmt.Fprintln(h.w, "== Sender =="); err != nil {
		return err
	}
	if err := h.writeCompute(&report.Compute); err != nil {
		return err
	}
	if report.Flip != nil {
		if _, err := fmt.Fprintln(h.w, "\n== Channel =="); err != nil {
			return err
		}
		if err := h.writeFlip(report.Flip); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(h.w, "\n== Receiver =="); err != nil {
		return err
	}
	return h.writeVerify(&report.Verify)
}

func (h *TextOutputHandler) Close() error {
	return nil
}

func (h *TextOutputHandler) writeCompute(report *models.ComputeReport) error {
	if _, err := fmt.Fprintf(h.w, "Data blocks: %s\n\n", strings.Join(report.Blocks, " ")); err != nil {
		return err
	}
	if err := h.writeSteps(report.Steps); err != nil {
		return err
	}
	_, err := fmt.Fprintf(h.w, "\nChecksum: %s (%d)\nTransmitted packet: %s\n",
		report.Checksum, report.ChecksumDecimal, report.Packet)
	return err
}

func (h *TextOutputHandler) writeVerify(report *models.VerifyReport) error {
	if _, err := fmt.Fprintf(h.w, "Received packet: %s\n", report.Packet); err != nil {
		return err
	}
	if len(report.Steps) > 0 {
		if _, err := fmt.Fprintln(h.w); err != nil {
			return err
		}
		if err := h.writeSteps(report.Steps); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(h.w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(h.w, "Sum: %s (expected %s)\n%s\n", report.ReceivedSum, report.Expected, report.Message)
	return err
}

func (h *TextOutputHandler) writeFlip(report *models.FlipReport) error {
	_, err := fmt.Fprintf(h.w, "Flipped bit %d of block %d\nOriginal:  %s\nCorrupted: %s\n",
		report.Flip.Bit, report.Flip.Block, report.Original, report.Corrupted)
	return err
}

func (h *TextOutputHandler) writeSteps(steps []checksum.StepRecord) error {
	tw := tabwriter.NewWriter(h.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tDESCRIPTION\tOPERAND 1\tOPERAND 2\tRESULT\tCARRY")
	for _, s := range steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", s.Step, s.Description, s.Operand1, dash(s.Operand2), s.Result, dash(s.Carry))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
