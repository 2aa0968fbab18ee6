// Package idhash computes deterministic identifiers for simulation runs.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

// ComputeRunID computes a deterministic run identifier using SHA256 over
// every configuration field including the seed. The same config always
// yields the same ID, so runs are addressable without storing anything.
// Returns hex-encoded hash (64 characters).
func ComputeRunID(cfg domain.SimulationConfig) string {
	data := fmt.Sprintf("%d|%d|%g|%g|%g|%g|%g|%g|%g|%d|%d",
		cfg.NumTrials,
		cfg.TradesPerTrial,
		cfg.WinPctRange.Min,
		cfg.WinPctRange.Max,
		cfg.LossPctRange.Min,
		cfg.LossPctRange.Max,
		cfg.WinRate,
		cfg.StartingCapital,
		cfg.OverheadPct,
		cfg.MovingAverageWindow,
		cfg.Seed,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ShortRunID returns a compact base58 form of the first 8 bytes of a run
// ID, for display and file names. Returns the input unchanged if it is
// not valid hex.
func ShortRunID(runID string) string {
	raw, err := hex.DecodeString(runID)
	if err != nil || len(raw) < 8 {
		return runID
	}
	return base58.Encode(raw[:8])
}
