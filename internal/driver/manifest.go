package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

// RegionOutcome is one region's result in a RunManifest (SPEC_FULL.md §3.1).
type RegionOutcome struct {
	RegionX          int32     `json:"region_x"`
	RegionZ          int32     `json:"region_z"`
	Status           string    `json:"status"` // "completed", "failed", "cancelled"
	Error            string    `json:"error,omitempty"`
	FinishedAt       time.Time `json:"finished_at"`
}

// RunManifest is the durability record persisted next to the world so a
// crashed or cancelled run can be inspected for which regions finished
// (SPEC_FULL.md §3.1, §4.9.S). It is written after each unit completes, not
// just at the end, so a crash mid-run still leaves an accurate manifest.
type RunManifest struct {
	ID         string          `json:"id"`
	MinLon     float64         `json:"min_lon"`
	MinLat     float64         `json:"min_lat"`
	MaxLon     float64         `json:"max_lon"`
	MaxLat     float64         `json:"max_lat"`
	Scale      float64         `json:"scale"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Status     string          `json:"status"` // "running", "done", "failed", "cancelled"
	Regions    []RegionOutcome `json:"regions"`

	path string
}

// NewRunManifest creates a fresh manifest for a run whose file is
// <worldDir>/arnisgo-run.json. Nothing is written here; the file first
// appears on the first RecordRegion or Finish call.
func NewRunManifest(worldDir string, bbox osm.GeoBBox, scale float64) *RunManifest {
	return &RunManifest{
		ID: uuid.NewString(), MinLon: bbox.MinLon, MinLat: bbox.MinLat,
		MaxLon: bbox.MaxLon, MaxLat: bbox.MaxLat, Scale: scale,
		StartedAt: time.Now(), Status: "running",
		path: filepath.Join(worldDir, "arnisgo-run.json"),
	}
}

// RecordRegion appends a region's outcome and persists the manifest.
func (m *RunManifest) RecordRegion(o RegionOutcome) error {
	m.Regions = append(m.Regions, o)
	return m.save()
}

// Finish marks the run complete and persists the final manifest.
func (m *RunManifest) Finish(status string) error {
	now := time.Now()
	m.FinishedAt = &now
	m.Status = status
	return m.save()
}

// save atomically writes the manifest, matching the teacher's
// write-temp-then-rename storage pattern.
func (m *RunManifest) save() error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run manifest: %w", err)
	}
	data = append(data, '\n')
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write run manifest: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename run manifest: %w", err)
	}
	return nil
}
