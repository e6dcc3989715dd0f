package config

import (
	"fmt"
	"strings"
)

// normalize expands and absolutizes every path field and canonicalizes
// logging values. It must run before Validate.
func (c *Config) normalize() error {
	for name, field := range map[string]*string{
		"save_dir":         &c.Paths.SaveDir,
		"gd_resources_dir": &c.Paths.GDResourcesDir,
		"gd_writable_dir":  &c.Paths.GDWritableDir,
		"log_dir":          &c.Paths.LogDir,
		"song_info.path":   &c.SongInfo.Path,
	} {
		value := strings.TrimSpace(*field)
		if value == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("normalize %s: %w", name, err)
		}
		*field = expanded
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
