package collectors

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/manifest-network/onesum/internal/models"
)

// SweepSource provides the most recent sweep report, if any.
type SweepSource interface {
	LastSweep() (models.SweepReport, bool)
}

// SweepStore keeps the most recent sweep report. It is safe for concurrent use.
type SweepStore struct {
	mu     sync.RWMutex
	report models.SweepReport
	ok     bool
}

func (s *SweepStore) Set(report models.SweepReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
	s.ok = true
}

func (s *SweepStore) LastSweep() (models.SweepReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report, s.ok
}

// LastSweepCollector exposes the outcome of the most recent sweep as gauges.
type LastSweepCollector struct {
	source     SweepSource
	variants   *prometheus.Desc
	undetected *prometheus.Desc
}

func NewLastSweepCollector(source SweepSource) *LastSweepCollector {
	return &LastSweepCollector{
		source: source,
		variants: prometheus.NewDesc(
			prometheus.BuildFQName("onesum", "last_sweep", "variants"),
			"Number of corrupted variants checked by the most recent sweep",
			[]string{"flips_per_variant"},
			nil,
		),
		undetected: prometheus.NewDesc(
			prometheus.BuildFQName("onesum", "last_sweep", "undetected"),
			"Number of corrupted variants the most recent sweep failed to detect",
			[]string{"flips_per_variant"},
			nil,
		),
	}
}

func (c *LastSweepCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.variants
	ch <- c.undetected
}

func (c *LastSweepCollector) Collect(ch chan<- prometheus.Metric) {
	report, ok := c.source.LastSweep()
	if !ok {
		return
	}

	flips := strconv.Itoa(report.FlipsPerRun)
	ch <- prometheus.MustNewConstMetric(c.variants, prometheus.GaugeValue, float64(report.Variants), flips)
	ch <- prometheus.MustNewConstMetric(c.undetected, prometheus.GaugeValue, float64(len(report.Undetected)), flips)
}
