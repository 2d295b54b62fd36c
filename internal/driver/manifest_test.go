package driver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/arnisgo/internal/osm"
)

func TestRunManifestRecordAndFinishPersist(t *testing.T) {
	dir := t.TempDir()
	bbox := osm.GeoBBox{MinLon: 1, MinLat: 2, MaxLon: 3, MaxLat: 4}
	m := NewRunManifest(dir, bbox, 1.5)

	if err := m.RecordRegion(RegionOutcome{RegionX: 0, RegionZ: 0, Status: "completed"}); err != nil {
		t.Fatalf("RecordRegion: %v", err)
	}
	if err := m.RecordRegion(RegionOutcome{RegionX: 1, RegionZ: 0, Status: "failed", Error: "boom"}); err != nil {
		t.Fatalf("RecordRegion: %v", err)
	}
	if err := m.Finish("done"); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "arnisgo-run.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var decoded RunManifest
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if decoded.Status != "done" {
		t.Errorf("Status = %q, want done", decoded.Status)
	}
	if decoded.FinishedAt == nil {
		t.Error("expected FinishedAt to be set")
	}
	if len(decoded.Regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(decoded.Regions))
	}
	if decoded.Regions[1].Status != "failed" || decoded.Regions[1].Error != "boom" {
		t.Errorf("unexpected second region outcome: %+v", decoded.Regions[1])
	}
}

func TestRunManifestNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	m := NewRunManifest(dir, osm.GeoBBox{}, 1.0)
	if err := m.Finish("cancelled"); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "arnisgo-run.json.tmp")); !os.IsNotExist(err) {
		t.Error("expected temp file to be renamed away, not left behind")
	}
}
