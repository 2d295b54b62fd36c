package runconfig

import "testing"

func TestMergeExplicitFlagWins(t *testing.T) {
	cfg := Defaults()
	cfg.Scale = 2.0
	profile := Params{Scale: 5.0, Terrain: true}

	Merge(&cfg, profile, map[string]bool{FlagScale: true})

	if cfg.Scale != 2.0 {
		t.Errorf("Scale = %v, want explicit 2.0 to survive", cfg.Scale)
	}
	if !cfg.Terrain {
		t.Error("Terrain: expected profile value to fill an unset flag")
	}
}

func TestMergeProfileFillsUnsetFields(t *testing.T) {
	cfg := Defaults()
	profile := Params{WorldDir: "/tmp/world", BBox: "0,0,1,1", Workers: 4}

	Merge(&cfg, profile, map[string]bool{})

	if cfg.WorldDir != "/tmp/world" {
		t.Errorf("WorldDir = %q, want profile value", cfg.WorldDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestParseBBoxValid(t *testing.T) {
	bbox, err := ParseBBox("10.5,20.5,11.5,21.5")
	if err != nil {
		t.Fatalf("ParseBBox: %v", err)
	}
	if bbox.MinLon != 10.5 || bbox.MaxLat != 21.5 {
		t.Errorf("unexpected bbox: %+v", bbox)
	}
}

func TestParseBBoxRejectsInverted(t *testing.T) {
	if _, err := ParseBBox("10,10,5,5"); err == nil {
		t.Fatal("expected error for inverted bbox")
	}
}

func TestParseBBoxRejectsMalformed(t *testing.T) {
	if _, err := ParseBBox("not,a,bbox"); err == nil {
		t.Fatal("expected error for malformed bbox")
	}
}

func TestParseSpawnEmptyIsNone(t *testing.T) {
	_, _, ok, err := ParseSpawn("")
	if err != nil {
		t.Fatalf("ParseSpawn: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for empty spawn")
	}
}

func TestParseSpawnValid(t *testing.T) {
	lat, lon, ok, err := ParseSpawn("51.5,-0.1")
	if err != nil {
		t.Fatalf("ParseSpawn: %v", err)
	}
	if !ok || lat != 51.5 || lon != -0.1 {
		t.Errorf("got (%v,%v,%v), want (51.5,-0.1,true)", lat, lon, ok)
	}
}
