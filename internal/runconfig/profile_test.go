package runconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfileValid(t *testing.T) {
	path := writeProfile(t, `
path: /tmp/world
bbox: "0,0,1,1"
scale: 2.5
terrain: true
workers: 3
`)
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.WorldDir != "/tmp/world" || p.Scale != 2.5 || !p.Terrain || p.Workers != 3 {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestLoadProfileRejectsUnknownField(t *testing.T) {
	path := writeProfile(t, `
path: /tmp/world
not_a_real_field: true
`)
	if _, err := LoadProfile(path); err == nil {
		t.Fatal("expected schema validation to reject an unknown field")
	}
}

func TestLoadProfileRejectsBadBBoxPattern(t *testing.T) {
	path := writeProfile(t, `
path: /tmp/world
bbox: "not-a-bbox"
`)
	if _, err := LoadProfile(path); err == nil {
		t.Fatal("expected schema validation to reject a malformed bbox string")
	}
}
