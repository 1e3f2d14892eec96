package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.WorkDir != filepath.Join("target", "jmeter") {
		t.Errorf("unexpected work dir: %q", cfg.WorkDir)
	}
	if cfg.Logging.ConfigFilename != "logkit.xml" {
		t.Errorf("unexpected log config filename: %q", cfg.Logging.ConfigFilename)
	}
	if cfg.CSVFormat() {
		t.Error("default format should be xml")
	}
	if !cfg.Properties.ReplaceDefaults {
		t.Error("custom property files should replace defaults by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jmstage.toml")
	content := `
work_dir = "build/perf"
plugin_tags = ["kg.apc:jmeter-plugins"]

[results]
format = "csv"

[properties.jmeter]
"jmeter.engine" = "standard"

[[plugins]]
group = "kg.apc"
artifact = "jmeter-plugins"
version = "1.1.2"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WorkDir != "build/perf" {
		t.Errorf("work_dir not loaded: %q", cfg.WorkDir)
	}
	if !cfg.CSVFormat() {
		t.Error("csv format not loaded")
	}
	if cfg.Properties.JMeter["jmeter.engine"] != "standard" {
		t.Errorf("property map not loaded: %v", cfg.Properties.JMeter)
	}
	if len(cfg.Plugins) != 1 || cfg.Plugins[0].Coordinate() != "kg.apc:jmeter-plugins" {
		t.Errorf("plugins not loaded: %v", cfg.Plugins)
	}
	// Unset fields keep their defaults.
	if cfg.Lockfile != "jmstage.lock.yaml" {
		t.Errorf("default lockfile lost: %q", cfg.Lockfile)
	}
}

func TestLoad_ExplicitMissingFileErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for explicitly supplied missing config")
	}
}

func TestLoad_MissingDefaultLocationsUseDefaults(t *testing.T) {
	// Point both fallback locations (cwd and XDG) at empty directories.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WorkDir != Default().WorkDir {
		t.Errorf("missing default config should yield defaults, got %q", cfg.WorkDir)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Results.Format = "json"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad results format")
	}

	cfg = Default()
	cfg.WorkDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty work dir")
	}
}
