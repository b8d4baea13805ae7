package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go-facefilter/internal/geometry"
)

// Config represents the face filter pipeline configuration
type Config struct {
	AssetsRoot string                  `yaml:"assets_root"`
	Filters    map[string]FilterConfig `yaml:"filters"`
	Output     OutputConfig            `yaml:"output"`
	Logging    LoggingConfig           `yaml:"logging"`
}

// FilterConfig configures one filter variant. A filter listed in the
// config is part of the pipeline; Params, when present, overrides the
// variant's built-in sizing parameters.
type FilterConfig struct {
	AssetsDir string           `yaml:"assets_dir"`
	Params    *geometry.Params `yaml:"params"`
}

type OutputConfig struct {
	Format      string `yaml:"format"`       // "png" or "jpeg"
	JPEGQuality int    `yaml:"jpeg_quality"` // 1-100
}

type LoggingConfig struct {
	BufferedLogging bool `yaml:"buffered_logging"`
	// SampleRate is a pointer so an explicit 0 (log every frame) is
	// distinguishable from an absent key, which defaults to 30.
	SampleRate *int `yaml:"sample_rate"`
	AutoFlush  bool `yaml:"auto_flush"`
	LogSkips   bool `yaml:"log_skips"` // log soft per-frame skips (invalid landmarks etc.)
}

// DefaultFilters is the stock filter set with its conventional asset
// directories, applied when the config lists no filters. The facemask
// entry is only active in mask mode.
var DefaultFilters = map[string]string{
	"hat":      "hats",
	"glasses":  "glasses",
	"nose":     "noses",
	"mouth":    "mouths",
	"facemask": "faces",
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	// Validate any parameter overrides up front; a bad override should
	// fail construction, not a frame.
	for name, filterCfg := range cfg.Filters {
		if filterCfg.Params == nil {
			continue
		}
		if err := filterCfg.Params.Validate(); err != nil {
			return nil, fmt.Errorf("invalid params for filter '%s': %w", name, err)
		}
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.AssetsRoot == "" {
		cfg.AssetsRoot = "imgs"
	}
	if len(cfg.Filters) == 0 {
		cfg.Filters = make(map[string]FilterConfig, len(DefaultFilters))
		for name, dir := range DefaultFilters {
			cfg.Filters[name] = FilterConfig{AssetsDir: dir}
		}
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "png"
	}
	if cfg.Output.JPEGQuality == 0 {
		cfg.Output.JPEGQuality = 90
	}
	if cfg.Logging.SampleRate == nil {
		defaultRate := 30
		cfg.Logging.SampleRate = &defaultRate
	}

	// Resolve filter asset dirs relative to assets_root if needed
	for name, filterCfg := range cfg.Filters {
		if filterCfg.AssetsDir == "" {
			filterCfg.AssetsDir = DefaultFilters[name]
		}
		if !filepath.IsAbs(filterCfg.AssetsDir) {
			filterCfg.AssetsDir = filepath.Join(cfg.AssetsRoot, filterCfg.AssetsDir)
		}
		cfg.Filters[name] = filterCfg
	}
}
