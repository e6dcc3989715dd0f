package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"jukebox/internal/config"
	"jukebox/internal/events"
	"jukebox/internal/gd"
	"jukebox/internal/index"
	"jukebox/internal/logging"
	"jukebox/internal/manager"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// session bundles the wired manager with the resources it borrows.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *gd.Cache
	host   *gd.LocalClient
	mgr    *manager.Manager
}

func (s *session) close() {
	s.mgr.Close()
	_ = s.cache.Close()
}

// withManager builds the full manager stack, runs fn, and tears the stack
// down afterwards.
func (c *commandContext) withManager(fn func(*session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	cache, err := gd.OpenCache(cfg.SongInfoPath(), logger)
	if err != nil {
		return err
	}

	bus := events.NewBus(logger)
	host := gd.NewLocalClient(cfg.Paths.GDWritableDir, cache, bus, logger)
	mgr := manager.New(cfg, host, bus, index.NewLogRegistrar(logger), logger)
	if err := mgr.Init(); err != nil {
		_ = cache.Close()
		return err
	}

	s := &session{cfg: cfg, logger: logger, cache: cache, host: host, mgr: mgr}
	defer s.close()
	return fn(s)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
