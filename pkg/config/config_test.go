package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/comicweb/pkg/appearance"
	"github.com/matzehuels/comicweb/pkg/edges"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.EdgeWeight != EdgeWeightCorrelation {
		t.Errorf("EdgeWeight = %q", c.EdgeWeight)
	}
	if c.Selection != edges.DefaultParams() {
		t.Errorf("Selection = %+v", c.Selection)
	}
	if c.Weights["Minor Appearances"] != 0.5 {
		t.Errorf("Minor Appearances weight = %v", c.Weights["Minor Appearances"])
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParseTOML(t *testing.T) {
	data := `
edge_weight = "coappearance"
min_appearances = 3

[weights]
"Mentions" = 0.0
"Cameo" = 0.2

[selection]
soft_floor = 0.6
top_n = 2
`
	c, err := ParseTOML([]byte(data))
	if err != nil {
		t.Fatalf("ParseTOML() error = %v", err)
	}
	if c.EdgeWeight != EdgeWeightCoAppearance || c.MinAppearances != 3 {
		t.Errorf("top-level = %q, %d", c.EdgeWeight, c.MinAppearances)
	}
	want := edges.Params{SoftFloor: 0.6, HardFloor: 0, TopN: 2}
	if c.Selection != want {
		t.Errorf("Selection = %+v, want %+v", c.Selection, want)
	}
	s := c.Scheme()
	if s[appearance.Mentions] != 0 || s[appearance.Appearances] != 1 || s[appearance.Kind("Cameo")] != 0.2 {
		t.Errorf("Scheme() = %v", s)
	}
	if c.Render.Engine != "neato" {
		t.Errorf("Render.Engine = %q, want default", c.Render.Engine)
	}
}

func TestParseYAML(t *testing.T) {
	data := `
strict_weights: true
selection:
  hard_floor: 0.1
render:
  engine: fdp
cache:
  redis: localhost:6379
  mongo: mongodb://localhost:27017
`
	c, err := ParseYAML([]byte(data))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if !c.StrictWeights || c.Selection.HardFloor != 0.1 || c.Selection.SoftFloor != 0.5 {
		t.Errorf("config = %+v", c)
	}
	if c.Render.Engine != "fdp" || c.Cache.Redis != "localhost:6379" || c.Cache.Mongo != "mongodb://localhost:27017" {
		t.Errorf("render/cache = %+v %+v", c.Render, c.Cache)
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	c, err := ParseYAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Selection != edges.DefaultParams() {
		t.Errorf("Selection = %+v", c.Selection)
	}
}

func TestUnknownKeys(t *testing.T) {
	if _, err := ParseTOML([]byte("soft_flor = 0.3\n")); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("toml: err = %v", err)
	}
	if _, err := ParseYAML([]byte("selection:\n  topn: 3\n")); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("yaml: err = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file    string
		content string
		wantErr error
	}{
		{"c.toml", "top = 1\n", ErrUnknownKey},
		{"c.yml", "min_appearances: 2\n", nil},
		{"c.json", "{}", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if tt.wantErr == nil && err != nil {
				t.Errorf("Load() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"edge weight", func(c *Config) { c.EdgeWeight = "jaccard" }},
		{"min appearances", func(c *Config) { c.MinAppearances = -1 }},
		{"negative weight", func(c *Config) { c.Weights["Mentions"] = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	c := Default()
	c.Selection.TopN = 4
	var buf bytes.Buffer
	if err := c.WriteTOML(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[selection]") {
		t.Errorf("missing selection table:\n%s", buf.String())
	}
	back, err := ParseTOML(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseTOML(WriteTOML()) error = %v\n%s", err, buf.String())
	}
	if back.Selection.TopN != 4 || back.Weights["Appearances"] != 1 {
		t.Errorf("round trip = %+v", back)
	}
}
