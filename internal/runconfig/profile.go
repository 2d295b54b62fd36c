package runconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// profileSchemaJSON validates a loaded --profile file before it ever
// reaches Merge (spec.md §7: a malformed profile is an InvalidBBox-class
// fatal error at the driver boundary, exit code 2).
const profileSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "path": {"type": "string"},
    "bbox": {"type": "string", "pattern": "^-?[0-9.]+,-?[0-9.]+,-?[0-9.]+,-?[0-9.]+$"},
    "scale": {"type": "number", "exclusiveMinimum": 0},
    "ground_level": {"type": "integer"},
    "terrain": {"type": "boolean"},
    "interior": {"type": "boolean"},
    "roof": {"type": "boolean"},
    "fill_ground": {"type": "boolean"},
    "debug": {"type": "boolean"},
    "floodfill_timeout": {"type": "number", "exclusiveMinimum": 0},
    "spawn": {"type": "string"},
    "progress_addr": {"type": "string"},
    "cache_db": {"type": "string"},
    "workers": {"type": "integer", "minimum": 1}
  }
}`

// yamlProfile is the on-disk shape of a --profile file; fields map 1:1 onto
// Params via ToParams.
type yamlProfile struct {
	Path             string  `yaml:"path"`
	BBox             string  `yaml:"bbox"`
	Scale            float64 `yaml:"scale"`
	GroundLevel      int32   `yaml:"ground_level"`
	Terrain          bool    `yaml:"terrain"`
	Interior         bool    `yaml:"interior"`
	Roof             bool    `yaml:"roof"`
	FillGround       bool    `yaml:"fill_ground"`
	Debug            bool    `yaml:"debug"`
	FloodFillTimeout float64 `yaml:"floodfill_timeout"`
	Spawn            string  `yaml:"spawn"`
	ProgressAddr     string  `yaml:"progress_addr"`
	CacheDB          string  `yaml:"cache_db"`
	Workers          int     `yaml:"workers"`
}

func (p yamlProfile) toParams() Params {
	return Params{
		WorldDir: p.Path, BBox: p.BBox, Scale: p.Scale, BaseY: p.GroundLevel,
		Terrain: p.Terrain, Interior: p.Interior, Roof: p.Roof, FillGround: p.FillGround, Debug: p.Debug,
		FloodFillTimeoutSeconds: p.FloodFillTimeout, Spawn: p.Spawn,
		ProgressAddr: p.ProgressAddr, CacheDB: p.CacheDB, Workers: p.Workers,
	}
}

// LoadProfile reads and validates a YAML batch profile against
// profileSchemaJSON, then decodes it into Params.
func LoadProfile(path string) (Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("runconfig: read profile: %w", err)
	}

	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return Params{}, fmt.Errorf("runconfig: parse profile: %w", err)
	}

	schema, err := compileProfileSchema()
	if err != nil {
		return Params{}, fmt.Errorf("runconfig: compile profile schema: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return Params{}, fmt.Errorf("runconfig: invalid profile: %w", err)
	}

	var p yamlProfile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Params{}, fmt.Errorf("runconfig: decode profile: %w", err)
	}
	return p.toParams(), nil
}

func compileProfileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.schema.json", strings.NewReader(profileSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("profile.schema.json")
}
