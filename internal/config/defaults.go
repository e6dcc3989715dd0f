package config

import (
	"os"
	"path/filepath"
)

// Default returns the repository default configuration. Paths are left in
// their tilde form; Load expands them during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			SaveDir:        defaultDataDir(),
			GDResourcesDir: "",
			GDWritableDir:  "",
			LogDir:         defaultLogDir(),
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
		SongInfo: SongInfo{
			Enabled: true,
		},
	}
}

func defaultDataDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && base != "" {
		return filepath.Join(base, "jukebox")
	}
	return "~/.local/share/jukebox"
}

func defaultLogDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && base != "" {
		return filepath.Join(base, "jukebox")
	}
	return "~/.local/state/jukebox"
}
