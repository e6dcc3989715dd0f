package config

import (
	"errors"
	"fmt"
)

// Validate reports configuration values that cannot be used at runtime.
func (c *Config) Validate() error {
	var problems []error

	if c.Paths.SaveDir == "" {
		problems = append(problems, errors.New("paths.save_dir must be set"))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level))
	}

	return errors.Join(problems...)
}
