package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/perfstack/jmstage/internal/artifact"
	"github.com/perfstack/jmstage/internal/util"
)

// Config represents the main configuration
type Config struct {
	// WorkDir is where the isolated JMeter home is staged.
	WorkDir string `toml:"work_dir"`

	// Lockfile is the resolved dependency set written by the host build.
	Lockfile string `toml:"lockfile"`

	// TestFilesDir holds the .jmx test plans and optional overrides
	// (custom property files, advanced logging config).
	TestFilesDir string `toml:"test_files_dir"`

	// PluginsDir holds optional per-plugin manifest files.
	PluginsDir string `toml:"plugins_dir"`

	Results ResultsConfig `toml:"results"`
	Logging LoggingConfig `toml:"logging"`
	Proxy   ProxyConfig   `toml:"proxy"`

	// Plugins are extra declared dependencies of the staging step itself,
	// merged with whatever the lockfile carries.
	Plugins []artifact.Declaration `toml:"plugins"`

	// PluginTags are group:artifact coordinates the operator asserts are
	// engine extensions (staged in lib/ext) rather than plain libraries.
	PluginTags []string `toml:"plugin_tags"`

	Properties PropertiesConfig `toml:"properties"`
}

// ResultsConfig controls where and how result files are written.
type ResultsConfig struct {
	// Directory overrides the default <work_dir>/results location. It may
	// use /, \ or | as separators; they are normalized before use.
	Directory string `toml:"directory"`

	// Format is "xml" or "csv".
	Format string `toml:"format"`

	Timestamp       bool   `toml:"timestamp"`
	AppendTimestamp bool   `toml:"append_timestamp"`
	TimestampLayout string `toml:"timestamp_layout"`
}

// LoggingConfig controls the engine's logging, not ours.
type LoggingConfig struct {
	// ConfigFilename names the advanced logging configuration file looked
	// up in the test files directory.
	ConfigFilename string `toml:"config_filename"`

	// RootLevel overrides every engine log level when set. One of
	// FATAL_ERROR, ERROR, WARN, INFO, DEBUG (case-insensitive).
	RootLevel string `toml:"root_level"`
}

// ProxyConfig is passed through to the engine argument list.
type ProxyConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// PropertiesConfig carries the property maps merged into the engine's
// default property files, one map per target file.
type PropertiesConfig struct {
	JMeter      map[string]string `toml:"jmeter"`
	SaveService map[string]string `toml:"saveservice"`
	Upgrade     map[string]string `toml:"upgrade"`
	User        map[string]string `toml:"user"`
	Global      map[string]string `toml:"global"`
	System      map[string]string `toml:"system"`

	// CustomFile is an extra properties file handed to the engine as-is.
	CustomFile string `toml:"custom_file"`

	// ReplaceDefaults makes custom property files replace the bundled
	// defaults instead of being merged over them.
	ReplaceDefaults bool `toml:"replace_defaults"`
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jmstage", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "jmstage", "config.toml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		WorkDir:      filepath.Join("target", "jmeter"),
		Lockfile:     "jmstage.lock.yaml",
		TestFilesDir: filepath.Join("src", "test", "jmeter"),
		PluginsDir:   filepath.Join("src", "test", "jmeter", "plugins"),
		Results: ResultsConfig{
			Format:    "xml",
			Timestamp: true,
		},
		Logging: LoggingConfig{
			ConfigFilename: "logkit.xml",
		},
		Properties: PropertiesConfig{
			ReplaceDefaults: true,
		},
	}
}

// Load reads configuration from the given path. When path is empty it
// falls back to the project-local jmstage.toml and then the user config
// path; a missing file is only tolerated on the fallback paths — an
// explicitly supplied path that does not exist is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if _, err := os.Stat("jmstage.toml"); err == nil {
			path = "jmstage.toml"
		} else {
			path = DefaultPath()
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enum-valued fields.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Results.Format) {
	case "", "xml", "csv":
	default:
		return fmt.Errorf("results.format must be xml or csv, got %q", c.Results.Format)
	}
	if c.WorkDir == "" {
		return fmt.Errorf("work_dir must not be empty")
	}
	return nil
}

// CSVFormat reports whether results are written as CSV.
func (c *Config) CSVFormat() bool {
	return strings.EqualFold(c.Results.Format, "csv")
}

// CreateDefault writes the default configuration file and returns its path.
func CreateDefault() (string, error) {
	path := DefaultPath()
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(Default()); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
