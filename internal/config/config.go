package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// SaveDir is the per-user save root. The manifest and nongs
	// directories underneath it are owned exclusively by this process.
	SaveDir string `toml:"save_dir"`
	// GDResourcesDir is the game's read-only resource root.
	GDResourcesDir string `toml:"gd_resources_dir"`
	// GDWritableDir is the game's writable root where downloaded songs and
	// the Resources directory live. Never written by Jukebox.
	GDWritableDir string `toml:"gd_writable_dir"`
	LogDir        string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// SongInfo contains configuration for the local song info cache.
type SongInfo struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: <save_dir>/songinfo.db
}

// Config encapsulates all configuration values for Jukebox.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
	SongInfo SongInfo `toml:"song_info"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/jukebox/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("jukebox.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ManifestDir returns the directory holding per-ID manifest files.
func (c *Config) ManifestDir() string {
	return filepath.Join(c.Paths.SaveDir, "manifest")
}

// NongsDir returns the directory owning user-added audio files.
func (c *Config) NongsDir() string {
	return filepath.Join(c.Paths.SaveDir, "nongs")
}

// LegacyManifestPath returns the location of the single-file v2 manifest.
func (c *Config) LegacyManifestPath() string {
	return filepath.Join(c.Paths.SaveDir, "nong_data.json")
}

// GDResources returns the game's Resources directory. An explicit
// gd_resources_dir wins; otherwise it sits under the writable root.
func (c *Config) GDResources() string {
	if c.Paths.GDResourcesDir != "" {
		return c.Paths.GDResourcesDir
	}
	return filepath.Join(c.Paths.GDWritableDir, "Resources")
}

// SongInfoPath returns the song info cache location, or "" when disabled.
func (c *Config) SongInfoPath() string {
	if !c.SongInfo.Enabled {
		return ""
	}
	if strings.TrimSpace(c.SongInfo.Path) != "" {
		return c.SongInfo.Path
	}
	return filepath.Join(c.Paths.SaveDir, "songinfo.db")
}

// EnsureDirectories creates required directories for manager operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.SaveDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
