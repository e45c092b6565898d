// Package config loads comicweb configuration files.
//
// Files are TOML or YAML, chosen by extension. Every key is optional; missing
// keys keep the values of [Default]. Unknown keys are rejected so that typos
// do not silently fall back to defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/comicweb/pkg/appearance"
	"github.com/matzehuels/comicweb/pkg/edges"
	"github.com/matzehuels/comicweb/pkg/weight"
)

// Edge weight methods.
const (
	EdgeWeightCorrelation  = "correlation"
	EdgeWeightCoAppearance = "coappearance"
)

var (
	// ErrUnsupportedFormat is returned for config files that are neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrUnknownKey is returned when a config file contains keys that map
	// to no setting.
	ErrUnknownKey = errors.New("unknown config key")
)

// Config is the effective configuration.
type Config struct {
	EdgeWeight     string             `toml:"edge_weight" yaml:"edge_weight" json:"edge_weight"`
	StrictWeights  bool               `toml:"strict_weights" yaml:"strict_weights" json:"strict_weights"`
	MinAppearances int                `toml:"min_appearances" yaml:"min_appearances" json:"min_appearances"`
	Weights        map[string]float64 `toml:"weights" yaml:"weights" json:"weights"`
	Selection      edges.Params       `toml:"selection" yaml:"selection" json:"selection"`
	Render         Render             `toml:"render" yaml:"render" json:"render"`
	Cache          Cache              `toml:"cache" yaml:"cache" json:"cache"`
}

// Render holds rendering settings.
type Render struct {
	Engine string `toml:"engine" yaml:"engine" json:"engine"`
}

// Cache holds cache backend settings. Redis takes precedence over Mongo;
// when both are empty the file cache is used.
type Cache struct {
	Redis string `toml:"redis" yaml:"redis" json:"redis,omitempty"`
	Mongo string `toml:"mongo" yaml:"mongo" json:"mongo,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	w := make(map[string]float64)
	for k, v := range weight.DefaultScheme() {
		w[k.String()] = v
	}
	return Config{
		EdgeWeight: EdgeWeightCorrelation,
		Weights:    w,
		Selection:  edges.DefaultParams(),
		Render:     Render{Engine: "neato"},
	}
}

// Scheme converts the configured weights into a weighting scheme.
func (c Config) Scheme() weight.Scheme {
	s := make(weight.Scheme, len(c.Weights))
	for label, v := range c.Weights {
		s[appearance.ParseKind(label)] = v
	}
	return s
}

// fileConfig mirrors Config with pointers so that absent keys can be told
// apart from zero values.
type fileConfig struct {
	EdgeWeight     *string            `toml:"edge_weight" yaml:"edge_weight"`
	StrictWeights  *bool              `toml:"strict_weights" yaml:"strict_weights"`
	MinAppearances *int               `toml:"min_appearances" yaml:"min_appearances"`
	Weights        map[string]float64 `toml:"weights" yaml:"weights"`
	Selection      struct {
		SoftFloor *float64 `toml:"soft_floor" yaml:"soft_floor"`
		HardFloor *float64 `toml:"hard_floor" yaml:"hard_floor"`
		TopN      *int     `toml:"top_n" yaml:"top_n"`
	} `toml:"selection" yaml:"selection"`
	Render struct {
		Engine *string `toml:"engine" yaml:"engine"`
	} `toml:"render" yaml:"render"`
	Cache struct {
		Redis *string `toml:"redis" yaml:"redis"`
		Mongo *string `toml:"mongo" yaml:"mongo"`
	} `toml:"cache" yaml:"cache"`
}

func (f fileConfig) apply(c *Config) {
	set(&c.EdgeWeight, f.EdgeWeight)
	set(&c.StrictWeights, f.StrictWeights)
	set(&c.MinAppearances, f.MinAppearances)
	set(&c.Selection.SoftFloor, f.Selection.SoftFloor)
	set(&c.Selection.HardFloor, f.Selection.HardFloor)
	set(&c.Selection.TopN, f.Selection.TopN)
	set(&c.Render.Engine, f.Render.Engine)
	set(&c.Cache.Redis, f.Cache.Redis)
	set(&c.Cache.Mongo, f.Cache.Mongo)
	// Listed weights override individual defaults; unlisted kinds keep theirs.
	maps.Copy(c.Weights, f.Weights)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Load reads the config file at path and merges it over [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadOrDefault loads path when it is non-empty, then falls back to the
// default config file if one exists, and otherwise returns [Default].
func LoadOrDefault(path string) (Config, string, error) {
	if path != "" {
		c, err := Load(path)
		return c, path, err
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			c, err := Load(p)
			return c, p, err
		}
	}
	return Default(), "", nil
}

// DefaultPaths lists the config files looked up when none is given.
func DefaultPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(dir, "comicweb")
	return []string{
		filepath.Join(base, "config.toml"),
		filepath.Join(base, "config.yaml"),
	}
}

// ParseTOML decodes TOML config data.
func ParseTOML(data []byte) (Config, error) {
	var f fileConfig
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Config{}, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	c := Default()
	f.apply(&c)
	return c, nil
}

// ParseYAML decodes YAML config data.
func ParseYAML(data []byte) (Config, error) {
	var f fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		if strings.Contains(err.Error(), "not found in type") {
			return Config{}, fmt.Errorf("%w: %v", ErrUnknownKey, err)
		}
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	c := Default()
	f.apply(&c)
	return c, nil
}

// WriteTOML encodes c as TOML. Weights are written in a stable order.
func (c Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// Validate checks the values that the pipeline cannot repair.
func (c Config) Validate() error {
	if !slices.Contains([]string{EdgeWeightCorrelation, EdgeWeightCoAppearance}, c.EdgeWeight) {
		return fmt.Errorf("edge_weight must be %q or %q, got %q", EdgeWeightCorrelation, EdgeWeightCoAppearance, c.EdgeWeight)
	}
	if c.MinAppearances < 0 {
		return fmt.Errorf("min_appearances must be >= 0, got %d", c.MinAppearances)
	}
	if err := c.Selection.Validate(); err != nil {
		return err
	}
	return c.Scheme().Validate()
}
