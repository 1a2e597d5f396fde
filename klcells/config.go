package klcells

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Engine names select the Multiplier a group is computed with.
const (
	EngineTypeH = "typeh" // closed-form star-move multiplication for fully commutative elements of H_n
	EngineHecke = "hecke" // oracle-backed multiplication for any Coxeter group
)

// GroupSpec names a Coxeter group and how to multiply in its Hecke algebra.
type GroupSpec struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type,omitempty"`   // e.g. "H4", "A3", "I2(5)"
	Matrix [][]int `yaml:"matrix,omitempty"` // explicit Coxeter matrix, used when Type is empty
	Engine string  `yaml:"engine,omitempty"` // EngineTypeH or EngineHecke
	Seed   string  `yaml:"seed,omitempty"`   // seed word for cell reports (default "13")

	AValue      int `yaml:"a_value,omitempty"`      // a-value a seed must have (default DefaultCellOpts.AValue)
	MaxVertices int `yaml:"max_vertices,omitempty"` // overrides limits.max_vertices for this group
}

// Limits bounds the work a single computation may do.
type Limits struct {
	MaxVertices int `yaml:"max_vertices"` // cell exploration vertex cap
	MaxInterval int `yaml:"max_interval"` // oracle Bruhat interval size cap
	MaxLength   int `yaml:"max_length"`   // oracle element length cap
	MaxMemo     int `yaml:"max_memo"`     // oracle memo size cap
}

type CatalogConfig struct {
	Path     string `yaml:"path"`
	ReadOnly bool   `yaml:"read_only"`
}

type ReportConfig struct {
	Path string `yaml:"path"`
}

// Config is the file-level configuration of the klcells tools.
type Config struct {
	Groups  []GroupSpec   `yaml:"groups"`
	Limits  Limits        `yaml:"limits"`
	Catalog CatalogConfig `yaml:"catalog"`
	Report  ReportConfig  `yaml:"report"`
}

// DefaultConfig returns a config with no groups and default limits.
func DefaultConfig() Config {
	return Config{
		Limits: Limits{
			MaxVertices: DefaultCellOpts.MaxVertices,
			MaxInterval: 50000,
			MaxLength:   64,
			MaxMemo:     2000000,
		},
	}
}

// LoadConfig reads a YAML config file, filling unset limits from DefaultConfig.
func LoadConfig(pathname string) (Config, error) {
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return Config{}, errors.Wrapf(ErrBadConfig, "read %q: %v", pathname, err)
	}
	return ParseConfig(buf)
}

// ParseConfig parses YAML config text, filling unset limits from DefaultConfig.
func ParseConfig(buf []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return Config{}, errors.Wrapf(ErrBadConfig, "parse yaml: %v", err)
	}
	def := DefaultConfig()
	if cfg.Limits.MaxVertices == 0 {
		cfg.Limits.MaxVertices = def.Limits.MaxVertices
	}
	if cfg.Limits.MaxInterval == 0 {
		cfg.Limits.MaxInterval = def.Limits.MaxInterval
	}
	if cfg.Limits.MaxLength == 0 {
		cfg.Limits.MaxLength = def.Limits.MaxLength
	}
	if cfg.Limits.MaxMemo == 0 {
		cfg.Limits.MaxMemo = def.Limits.MaxMemo
	}
	for i := range cfg.Groups {
		if cfg.Groups[i].Engine == "" {
			cfg.Groups[i].Engine = EngineHecke
		}
		if cfg.Groups[i].Seed == "" {
			cfg.Groups[i].Seed = "13"
		}
		if cfg.Groups[i].Name == "" {
			cfg.Groups[i].Name = cfg.Groups[i].Type
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks group entries and limits.
func (cfg *Config) Validate() error {
	seen := make(map[string]struct{}, len(cfg.Groups))
	for i, g := range cfg.Groups {
		if g.Name == "" {
			return errors.Wrapf(ErrBadConfig, "group %d has no name or type", i+1)
		}
		if _, dupe := seen[g.Name]; dupe {
			return errors.Wrapf(ErrBadConfig, "group %q listed twice", g.Name)
		}
		seen[g.Name] = struct{}{}
		if g.Type == "" && len(g.Matrix) == 0 {
			return errors.Wrapf(ErrBadConfig, "group %q needs a type or a matrix", g.Name)
		}
		if g.Type != "" && len(g.Matrix) > 0 {
			return errors.Wrapf(ErrBadConfig, "group %q has both a type and a matrix", g.Name)
		}
		if len(g.Matrix) > 0 {
			if err := CoxeterMatrix(g.Matrix).Validate(); err != nil {
				return errors.Wrapf(ErrBadConfig, "group %q: %v", g.Name, err)
			}
		}
		if g.AValue < 0 || g.MaxVertices < 0 {
			return errors.Wrapf(ErrBadConfig, "group %q: a_value and max_vertices must be non-negative", g.Name)
		}
		switch g.Engine {
		case EngineTypeH, EngineHecke:
		default:
			return errors.Wrapf(ErrBadConfig, "group %q has unknown engine %q", g.Name, g.Engine)
		}
	}
	if cfg.Limits.MaxVertices < 0 || cfg.Limits.MaxInterval < 0 || cfg.Limits.MaxLength < 0 || cfg.Limits.MaxMemo < 0 {
		return errors.Wrap(ErrBadConfig, "limits must be non-negative")
	}
	return nil
}

// Group returns the group spec with the given name.
func (cfg *Config) Group(name string) (GroupSpec, bool) {
	for _, g := range cfg.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupSpec{}, false
}
