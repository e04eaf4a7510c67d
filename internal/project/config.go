package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"clukc/internal/parser"
	"clukc/internal/trace"
)

// Config mirrors clukc.toml.
type Config struct {
	Compile CompileConfig `toml:"compile"`
	Cache   CacheConfig   `toml:"cache"`
	Trace   TraceConfig   `toml:"trace"`
}

type CompileConfig struct {
	Redeclare      string `toml:"redeclare"`
	MaxDiagnostics int    `toml:"max-diagnostics"`
	Jobs           int    `toml:"jobs"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// Manifest is a loaded clukc.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used when no manifest exists.
func Default() Config {
	return Config{
		Compile: CompileConfig{Redeclare: "allow", MaxDiagnostics: 100},
		Cache:   CacheConfig{Enabled: true},
		Trace:   TraceConfig{Level: "off", Output: "-"},
	}
}

// Load reads and validates the manifest at path. Keys missing from the file
// keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDir finds the nearest manifest above startDir and loads it.
func LoadFromDir(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// Validate checks enum values and numeric ranges.
func (c Config) Validate() error {
	if _, err := c.RedeclarePolicy(); err != nil {
		return fmt.Errorf("[compile].redeclare: %w", err)
	}
	if c.Compile.MaxDiagnostics < 0 {
		return fmt.Errorf("[compile].max-diagnostics must not be negative, got %d", c.Compile.MaxDiagnostics)
	}
	if c.Compile.Jobs < 0 {
		return fmt.Errorf("[compile].jobs must not be negative, got %d", c.Compile.Jobs)
	}
	if _, err := c.TraceLevel(); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	return nil
}

func (c Config) RedeclarePolicy() (parser.RedeclarePolicy, error) {
	return parser.ParseRedeclarePolicy(c.Compile.Redeclare)
}

func (c Config) TraceLevel() (trace.Level, error) {
	return trace.ParseLevel(c.Trace.Level)
}
