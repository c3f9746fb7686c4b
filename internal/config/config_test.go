package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, IsGitEnabled(cfg))
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json_format: true
output:
  format: sarif
  path: ./reports
git:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	assert.True(t, GetBoolValue(cfg, "Logger.DisableTime", true))
	assert.Equal(t, "sarif", cfg.Output.Format)
	assert.Equal(t, "./reports", cfg.Output.Path)
	assert.False(t, IsGitEnabled(cfg))
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "output:\n  format: json\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "INFO", cfg.Logger.Level)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
	t.Run("Directory instead of file", func(t *testing.T) {
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "is a directory")
	})
	t.Run("Unknown field", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "scanner:\n  ceiling: 9.9.9\n"))
		assert.Error(t, err)
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		wantErr    string
		wantFormat string
	}{
		{
			name: "Valid defaults",
			cfg:  Default(),
		},
		{
			name:    "Nil config",
			cfg:     nil,
			wantErr: "YAML global config: configuration object is nil",
		},
		{
			name:    "Unknown format",
			cfg:     &Config{Output: Output{Format: "xml"}},
			wantErr: `YAML global config: output directive is invalid: unsupported format "xml", expected one of text, json, sarif`,
		},
		{
			name:    "Unknown log level",
			cfg:     &Config{Logger: Logger{Level: "verbose"}},
			wantErr: `YAML global config: logger directive is invalid: unknown log level "verbose", expected one of TRACE, DEBUG, INFO, WARN, ERROR`,
		},
		{
			name: "Lowercase log level",
			cfg:  &Config{Logger: Logger{Level: "warn"}},
		},
		{
			name:       "Uppercase format",
			cfg:        &Config{Output: Output{Format: "JSON"}},
			wantFormat: "json",
		},
		{
			name:       "Mixed case format with spaces",
			cfg:        &Config{Output: Output{Format: " Sarif "}},
			wantFormat: "sarif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			if tt.wantFormat != "" {
				assert.Equal(t, tt.wantFormat, tt.cfg.Output.Format)
			}
		})
	}
}

func TestValidateConfigExpandsOutputPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := &Config{Output: Output{Path: "~/reports"}}
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, filepath.Join(home, "reports"), cfg.Output.Path)
}

func TestGetBoolValue(t *testing.T) {
	enabled := true
	cfg := &Config{Git: Git{Enabled: &enabled}}

	assert.True(t, GetBoolValue(cfg, "Git.Enabled", false))
	assert.False(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	assert.True(t, GetBoolValue(cfg, "Missing.Field", true))
	assert.True(t, GetBoolValue(nil, "Git.Enabled", true))
	assert.False(t, GetBoolValue((*Config)(nil), "Git.Enabled", false))
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "json", SetThen("json", "text"))
	assert.Equal(t, "text", SetThen("", "text"))
	assert.Equal(t, 3, SetThen(0, 3))
}
