package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/manifest-network/onesum/internal/checksum"
	"github.com/manifest-network/onesum/internal/metrics"
	"github.com/manifest-network/onesum/internal/metrics/collectors"
	"github.com/manifest-network/onesum/internal/models"
	"github.com/manifest-network/onesum/internal/sweep"
)

const (
	maxBodyBytes   = 1 << 20
	maxSweepBlocks = 64
)

type ChecksumRequest struct {
	Blocks  []string `json:"blocks"`
	Decimal bool     `json:"decimal"`
}

// PacketRequest names a packet either as one space separated string or as
// a list of blocks.
type PacketRequest struct {
	Packet string   `json:"packet"`
	Blocks []string `json:"blocks"`
}

type VerifyRequest struct {
	PacketRequest
	Steps bool `json:"steps"`
}

type FlipRequest struct {
	PacketRequest
	Block int `json:"block"`
	Bit   int `json:"bit"`
}

type SweepRequest struct {
	PacketRequest
	Pairs bool `json:"pairs"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Server exposes the checksum operations over HTTP.
type Server struct {
	recorder       *metrics.Recorder
	sweeps         *collectors.SweepStore
	maxConcurrency uint
}

// NewServer creates a Server. recorder and sweeps may be nil.
func NewServer(recorder *metrics.Recorder, sweeps *collectors.SweepStore, maxConcurrency uint) *Server {
	return &Server{recorder: recorder, sweeps: sweeps, maxConcurrency: maxConcurrency}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/checksum", s.handleChecksum)
	mux.HandleFunc("POST /v1/verify", s.handleVerify)
	mux.HandleFunc("POST /v1/flip", s.handleFlip)
	mux.HandleFunc("POST /v1/sweep", s.handleSweep)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func (s *Server) handleChecksum(w http.ResponseWriter, r *http.Request) {
	var req ChecksumRequest
	if !decode(w, r, &req) {
		return
	}

	blocks, err := parseBlocks(req.Blocks, req.Decimal)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := checksum.Compute(blocks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.recorder.ObserveCompute(len(blocks), result)

	slog.Debug("Computed checksum", "blocks", len(blocks), "checksum", result.Checksum.String())
	writeJSON(w, http.StatusOK, models.NewComputeReport(blocks, result))
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !decode(w, r, &req) {
		return
	}

	packet, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	outcome, err := checksum.Verify(packet)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.recorder.ObserveVerify(len(packet), outcome)

	slog.Debug("Verified packet", "blocks", len(packet), "valid", outcome.Valid)
	writeJSON(w, http.StatusOK, models.NewVerifyReport(packet, outcome, req.Steps))
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	var req FlipRequest
	if !decode(w, r, &req) {
		return
	}

	packet, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	corrupted, err := checksum.FlipBit(packet, req.Block, req.Bit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.recorder.ObserveFlip()

	writeJSON(w, http.StatusOK, models.FlipReport{
		Original:  checksum.FormatPacket(packet),
		Corrupted: checksum.FormatPacket(corrupted),
		Flip:      models.Flip{Block: req.Block, Bit: req.Bit},
	})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if !decode(w, r, &req) {
		return
	}

	packet, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(packet) > maxSweepBlocks {
		writeError(w, http.StatusBadRequest, fmt.Errorf("sweep accepts at most %d blocks, got %d", maxSweepBlocks, len(packet)))
		return
	}

	report, err := sweep.Run(r.Context(), packet, sweep.Options{Pairs: req.Pairs, MaxConcurrency: s.maxConcurrency})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("Sweep request cancelled")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.sweeps != nil {
		s.sweeps.Set(*report)
	}

	writeJSON(w, http.StatusOK, report)
}

func (p PacketRequest) parse() ([]checksum.Block, error) {
	switch {
	case strings.TrimSpace(p.Packet) != "" && len(p.Blocks) > 0:
		return nil, errors.New("set either packet or blocks, not both")
	case len(p.Blocks) > 0:
		return checksum.ParseBlocks(p.Blocks, false)
	default:
		return checksum.ParsePacket(p.Packet)
	}
}

func parseBlocks(blocks []string, decimal bool) ([]checksum.Block, error) {
	if len(blocks) == 0 {
		return nil, checksum.ErrNoBlocks
	}
	return checksum.ParseBlocks(blocks, decimal)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, err error) {
	slog.Debug("Request failed", "status", status, "error", err)
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
