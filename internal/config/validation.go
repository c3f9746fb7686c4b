package config

import (
	"fmt"
	"strings"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared/files"
)

var validLogLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

// ValidateConfig checks if the global configurations have valid values.
// Paths are expanded in place.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("YAML global config: output directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks that the configured log level is known.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if loggerConfig.Level == "" {
		return nil
	}
	level := strings.ToUpper(loggerConfig.Level)
	for _, l := range validLogLevels {
		if l == level {
			return nil
		}
	}
	return fmt.Errorf("unknown log level %q, expected one of %s", loggerConfig.Level, strings.Join(validLogLevels, ", "))
}

// ValidateOutputConfig normalizes and checks the report format and expands the output path.
func ValidateOutputConfig(outputConfig *Output) error {
	if outputConfig == nil {
		return fmt.Errorf("output configuration is nil")
	}
	outputConfig.Format = strings.ToLower(strings.TrimSpace(outputConfig.Format))
	if outputConfig.Format != "" && !shared.IsValidFormat(outputConfig.Format) {
		return fmt.Errorf("unsupported format %q, expected one of %s", outputConfig.Format, strings.Join(shared.OutputFormats, ", "))
	}
	if outputConfig.Path != "" {
		expanded, err := files.ExpandPath(outputConfig.Path)
		if err != nil {
			return fmt.Errorf("failed to expand output path %q: %w", outputConfig.Path, err)
		}
		outputConfig.Path = expanded
	}
	return nil
}
