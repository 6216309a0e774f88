package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/models"
)

// Options controls a sweep.
type Options struct {
	// Pairs flips every unordered pair of distinct bits instead of every single bit.
	Pairs bool

	MaxConcurrency uint

	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// Run verifies every corrupted variant of packet and reports which
// corruptions the checksum failed to detect. Undetected flips are listed in
// enumeration order regardless of scheduling.
func Run(ctx context.Context, packet []checksum.Block, opts Options) (*models.SweepReport, error) {
	if len(packet) == 0 {
		return nil, checksum.ErrNoBlocks
	}
	if opts.MaxConcurrency == 0 {
		opts.MaxConcurrency = 1
	}

	baseline, err := checksum.Verify(packet)
	if err != nil {
		return nil, err
	}

	variants := Variants(len(packet), opts.Pairs)
	slog.Debug("Starting sweep", "blocks", len(packet), "variants", len(variants), "pairs", opts.Pairs)

	var bar *progressbar.ProgressBar
	if opts.Progress != nil && len(variants) > 1 {
		bar = newProgressBar(opts.Progress, len(variants))
		if err := bar.RenderBlank(); err != nil {
			return nil, fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	detected, err := verifyVariants(ctx, packet, variants, opts.MaxConcurrency, bar)
	if err != nil {
		return nil, fmt.Errorf("failed to verify variants: %w", err)
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return nil, fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}

	report := &models.SweepReport{
		Packet:      checksum.FormatPacket(packet),
		Valid:       baseline.Valid,
		FlipsPerRun: 1,
		Variants:    len(variants),
		Undetected:  [][]models.Flip{},
	}
	if opts.Pairs {
		report.FlipsPerRun = 2
	}
	for i, ok := range detected {
		if ok {
			report.Detected++
		} else {
			report.Undetected = append(report.Undetected, variants[i])
		}
	}
	return report, nil
}

// Variants enumerates the flip sets of a packet of n blocks, ordered by
// block then bit.
func Variants(n int, pairs bool) [][]models.Flip {
	positions := make([]models.Flip, 0, n*checksum.BlockWidth)
	for block := 0; block < n; block++ {
		for bit := 0; bit < checksum.BlockWidth; bit++ {
			positions = append(positions, models.Flip{Block: block, Bit: bit})
		}
	}

	if !pairs {
		variants := make([][]models.Flip, len(positions))
		for i, p := range positions {
			variants[i] = []models.Flip{p}
		}
		return variants
	}

	variants := make([][]models.Flip, 0, len(positions)*(len(positions)-1)/2)
	for i := range positions {
		for j := i + 1; j < len(positions); j++ {
			variants = append(variants, []models.Flip{positions[i], positions[j]})
		}
	}
	return variants
}

// Apply returns a copy of packet with every flip applied.
func Apply(packet []checksum.Block, flips []models.Flip) ([]checksum.Block, error) {
	corrupted := append([]checksum.Block(nil), packet...)
	for _, f := range flips {
		var err error
		corrupted, err = checksum.FlipBit(corrupted, f.Block, f.Bit)
		if err != nil {
			return nil, err
		}
	}
	return corrupted, nil
}

// verifyVariants checks the variants in parallel. The result is indexed
// like variants and is true where the corruption was detected.
func verifyVariants(ctx context.Context, packet []checksum.Block, variants [][]models.Flip, maxConcurrency uint, bar *progressbar.ProgressBar) ([]bool, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxConcurrency)
	detected := make([]bool, len(variants))

	for i := range variants {
		if egCtx.Err() != nil {
			slog.Info("Sweep cancelled")
			break
		}

		idx := i
		sem <- struct{}{}

		eg.Go(func() error {
			defer func() { <-sem }()

			if err := egCtx.Err(); err != nil {
				return err
			}

			corrupted, err := Apply(packet, variants[idx])
			if err != nil {
				return fmt.Errorf("variant %d: %w", idx, err)
			}
			outcome, err := checksum.Verify(corrupted)
			if err != nil {
				return fmt.Errorf("variant %d: %w", idx, err)
			}
			detected[idx] = !outcome.Valid

			if bar != nil {
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return detected, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("Verifying variants..."),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
