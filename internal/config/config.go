package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigFile is looked up in the working directory when no --config flag is given.
const DefaultConfigFile = "wmverify.yml"

// Total policies decide which descriptors count toward the final ratio.
const (
	TotalPolicyProcessed = "processed"
	TotalPolicyLoaded    = "loaded"
)

// Report formats for the optional result artifact.
const (
	FormatJSON  = "json"
	FormatSARIF = "sarif"
	FormatHTML  = "html"
)

// DefaultMaxHitCount is the hit count ceiling above which a run is skipped.
const DefaultMaxHitCount = 50000

// Config represents the whole YAML configuration of the tool.
type Config struct {
	Logger   Logger   `yaml:"logger"`
	Debugger Debugger `yaml:"debugger"`
	Verifier Verifier `yaml:"verifier"`
	Output   Output   `yaml:"output"`
}

// Logger holds logging settings.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Debugger holds settings of the external debugger.
type Debugger struct {
	Dialect    string        `yaml:"dialect"`
	Path       string        `yaml:"path"`
	Timeout    time.Duration `yaml:"timeout"`
	TempFolder string        `yaml:"temp_folder"`
}

// Verifier holds scoring settings.
type Verifier struct {
	MaxHitCount *int   `yaml:"max_hit_count"`
	TotalPolicy string `yaml:"total_policy"`
}

// Output holds settings of the printed verdict and result artifacts.
type Output struct {
	Color  *bool  `yaml:"color"`
	Format string `yaml:"format"`
}

// ValidateConfigPath checks that the path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file and applies defaults and environment overrides.
// A missing file is only an error when explicit is true; otherwise defaults are used.
func LoadConfig(configPath string, explicit bool) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		err := LoadYAML(configPath, cfg)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
		}
	}

	applyDefaults(cfg)
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with every field set to its default value.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	cfg.Logger.Level = SetThen(cfg.Logger.Level, "info")
	cfg.Debugger.Dialect = SetThen(cfg.Debugger.Dialect, "lldb")
	cfg.Verifier.TotalPolicy = SetThen(cfg.Verifier.TotalPolicy, TotalPolicyProcessed)
	cfg.Output.Format = SetThen(cfg.Output.Format, FormatJSON)
	if cfg.Verifier.MaxHitCount == nil {
		v := DefaultMaxHitCount
		cfg.Verifier.MaxHitCount = &v
	}
}
