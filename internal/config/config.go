package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared/files"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "AUTHZ_GUARD_CONFIG"

// Config is the global YAML configuration of the tool.
// The detection patterns and the vulnerable version ceiling are fixed and deliberately absent.
type Config struct {
	Logger Logger `yaml:"logger"`
	Output Output `yaml:"output"`
	Git    Git    `yaml:"git"`
}

// Logger configures the hclog logger.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Output configures where and how the report is rendered.
type Output struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Git configures collection of repository metadata for SARIF reports.
type Git struct {
	Enabled *bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logger: Logger{Level: "INFO"},
		Output: Output{Format: shared.FormatText},
	}
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := files.ValidatePath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// LoadConfig loads the configuration from configPath, falling back to the AUTHZ_GUARD_CONFIG
// environment variable. Without either, defaults are returned.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	expanded, err := files.ExpandPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %q: %w", configPath, err)
	}
	if err := LoadYAML(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", expanded, err)
	}
	cfg.Logger.Level = SetThen(cfg.Logger.Level, "INFO")
	cfg.Output.Format = SetThen(cfg.Output.Format, shared.FormatText)

	return cfg, nil
}

// IsGitEnabled reports whether repository metadata collection is on. It defaults to true.
func IsGitEnabled(cfg *Config) bool {
	return GetBoolValue(cfg, "Git.Enabled", true)
}
