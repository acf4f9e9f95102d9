package acq

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-raman/export"
	"github.com/cwbudde/algo-raman/measure/noise"
)

// SessionConfig holds the parameters of one acquisition run.
type SessionConfig struct {
	// Averages is the number of exposures averaged per position. Values
	// below 1 are treated as 1.
	Averages int

	// SaveDir receives one CSV and one JSON file per position.
	SaveDir string

	// Positions to visit. An empty list acquires a single unnamed position.
	Positions []export.StagePosition

	// IntegrationTimeMs and LaserPowerMw are applied to the device before
	// the first exposure when positive.
	IntegrationTimeMs float64
	LaserPowerMw      float64

	// Logger receives per-step progress. Nil disables logging.
	Logger *slog.Logger
}

// Session runs position-by-position acquisitions against a Device.
type Session struct {
	cfg SessionConfig
	dev Device
	log *slog.Logger
}

// NewSession creates a session for the given device.
func NewSession(dev Device, cfg SessionConfig) *Session {
	if cfg.Averages < 1 {
		cfg.Averages = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Session{cfg: cfg, dev: dev, log: logger}
}

// Run connects the device, visits every position, and writes the averaged
// spectrum plus metadata for each. The laser is switched off on the way out
// even when a position fails.
func (s *Session) Run() (runErr error) {
	runID := uuid.NewString()
	start := time.Now()

	s.log.Info("starting acquisition run",
		"run_id", runID,
		"positions", len(s.cfg.Positions),
		"averages", s.cfg.Averages)

	if err := os.MkdirAll(s.cfg.SaveDir, 0o755); err != nil {
		return fmt.Errorf("acq: %w", err)
	}

	if err := s.dev.Connect(); err != nil {
		return fmt.Errorf("acq: connect: %w", err)
	}

	if s.cfg.IntegrationTimeMs > 0 {
		if err := s.dev.SetIntegrationTime(s.cfg.IntegrationTimeMs); err != nil {
			return fmt.Errorf("acq: %w", err)
		}
	}

	if s.cfg.LaserPowerMw > 0 {
		if err := s.dev.SetLaserPower(s.cfg.LaserPowerMw); err != nil {
			return fmt.Errorf("acq: %w", err)
		}
	}

	if err := s.dev.LaserOn(); err != nil {
		return fmt.Errorf("acq: laser on: %w", err)
	}

	defer func() {
		if err := s.dev.LaserOff(); err != nil && runErr == nil {
			runErr = fmt.Errorf("acq: laser off: %w", err)
		}
	}()

	positions := s.cfg.Positions
	if len(positions) == 0 {
		positions = []export.StagePosition{{Label: "DefaultPos"}}
	}

	for _, pos := range positions {
		if err := s.acquirePosition(runID, pos); err != nil {
			return err
		}
	}

	s.log.Info("acquisition run complete",
		"run_id", runID,
		"elapsed", time.Since(start).String())

	return nil
}

// acquirePosition averages the configured number of exposures at one
// position and writes spectrum and metadata files named after its label.
func (s *Session) acquirePosition(runID string, pos export.StagePosition) error {
	s.log.Info("acquiring position", "label", pos.Label, "x", pos.X, "y", pos.Y)

	var acc Accumulator

	var x []float64

	for i := 0; i < s.cfg.Averages; i++ {
		xi, yi, err := s.dev.Spectrum()
		if err != nil {
			return fmt.Errorf("acq: position %q exposure %d: %w", pos.Label, i+1, err)
		}

		x = xi
		if err := acc.Add(yi); err != nil {
			return fmt.Errorf("acq: position %q: %w", pos.Label, err)
		}

		s.log.Debug("exposure done", "label", pos.Label, "exposure", i+1, "of", s.cfg.Averages)
	}

	averaged, err := acc.Average()
	if err != nil {
		return fmt.Errorf("acq: position %q: %w", pos.Label, err)
	}

	quality := noise.Estimate(averaged)
	s.log.Info("position quality", "label", pos.Label, "snr_db", quality.SNR_dB)

	csvPath := filepath.Join(s.cfg.SaveDir, pos.Label+".csv")
	if err := export.WriteSpectrum(csvPath, x, averaged, nil); err != nil {
		return err
	}

	meta := map[string]any{
		"RunID":        runID,
		"PositionName": pos.Label,
		"PositionX":    pos.X,
		"PositionY":    pos.Y,
		"Averages":     acc.Count(),
		"DateTime":     time.Now().Format("2006-01-02 15:04:05"),
	}

	// Noiseless synthetic inputs produce an infinite SNR, which JSON cannot
	// carry; record quality only when it is finite.
	if !math.IsInf(quality.SNR_dB, 0) && !math.IsNaN(quality.SNR_dB) {
		meta["SNR_dB"] = quality.SNR_dB
		meta["NoiseFloor"] = quality.NoiseFloor
	}

	return export.WriteMetadata(filepath.Join(s.cfg.SaveDir, pos.Label+".json"), meta)
}
