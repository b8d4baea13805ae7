package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.AssetsRoot != "imgs" {
		t.Errorf("AssetsRoot = %q, want imgs", cfg.AssetsRoot)
	}
	if cfg.Output.Format != "png" {
		t.Errorf("Output.Format = %q, want png", cfg.Output.Format)
	}
	if cfg.Output.JPEGQuality != 90 {
		t.Errorf("Output.JPEGQuality = %d, want 90", cfg.Output.JPEGQuality)
	}
	if cfg.Logging.SampleRate == nil || *cfg.Logging.SampleRate != 30 {
		t.Errorf("Logging.SampleRate = %v, want 30", cfg.Logging.SampleRate)
	}

	// The stock filter set with dirs resolved against assets_root.
	wantDirs := map[string]string{
		"hat":      filepath.Join("imgs", "hats"),
		"glasses":  filepath.Join("imgs", "glasses"),
		"nose":     filepath.Join("imgs", "noses"),
		"mouth":    filepath.Join("imgs", "mouths"),
		"facemask": filepath.Join("imgs", "faces"),
	}
	gotDirs := make(map[string]string, len(cfg.Filters))
	for name, filterCfg := range cfg.Filters {
		gotDirs[name] = filterCfg.AssetsDir
	}
	if diff := cmp.Diff(wantDirs, gotDirs); diff != "" {
		t.Errorf("default filter dirs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExplicitFilters(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
assets_root: /srv/filters
filters:
  glasses:
    assets_dir: shades
  hat: {}
output:
  format: jpeg
  jpeg_quality: 75
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Filters) != 2 {
		t.Fatalf("len(Filters) = %d, want 2", len(cfg.Filters))
	}
	if got := cfg.Filters["glasses"].AssetsDir; got != filepath.Join("/srv/filters", "shades") {
		t.Errorf("glasses dir = %q", got)
	}
	// Empty assets_dir falls back to the filter's conventional directory.
	if got := cfg.Filters["hat"].AssetsDir; got != filepath.Join("/srv/filters", "hats") {
		t.Errorf("hat dir = %q", got)
	}
	if cfg.Output.Format != "jpeg" || cfg.Output.JPEGQuality != 75 {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoadAbsoluteDirNotResolved(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
filters:
  hat:
    assets_dir: /data/hats
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.Filters["hat"].AssetsDir; got != "/data/hats" {
		t.Errorf("absolute dir resolved to %q", got)
	}
}

func TestLoadParamsOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
filters:
  glasses:
    params:
      min_distance: 20
      max_distance: 100
      width_factor: 2.0
      min_clamp_width: 50
      max_clamp_width: 300
      height_factor: 1.0
      min_clamp_height: 10
      max_clamp_height: 200
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	p := cfg.Filters["glasses"].Params
	if p == nil {
		t.Fatal("params override not parsed")
	}
	if p.MinDistance != 20 || p.MaxDistance != 100 || p.WidthFactor != 2.0 {
		t.Errorf("params = %+v", p)
	}
}

func TestLoadRejectsInvalidParams(t *testing.T) {
	_, err := Load(writeConfig(t, `
filters:
  glasses:
    params:
      min_distance: 500
      max_distance: 100
`))
	if err == nil {
		t.Error("Load() accepted inverted distance bounds")
	}
}

// An explicit sample_rate of 0 means "log every frame" and must survive
// defaulting rather than being overwritten with 30.
func TestLoadExplicitZeroSampleRate(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
logging:
  buffered_logging: true
  sample_rate: 0
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.SampleRate == nil || *cfg.Logging.SampleRate != 0 {
		t.Errorf("Logging.SampleRate = %v, want explicit 0 preserved", cfg.Logging.SampleRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of missing file succeeded")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "filters: [not: a map\n")); err == nil {
		t.Error("Load() of malformed yaml succeeded")
	}
}
