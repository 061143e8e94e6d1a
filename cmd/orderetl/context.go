package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"orderetl/internal/config"
	"orderetl/internal/infrastructure"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	paths      *config.Paths
	logger     *slog.Logger
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
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		paths, err := cfg.GetPaths()
		if err != nil {
			c.configErr = err
			return
		}
		logger, err := infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			c.configErr = err
			return
		}
		if logger == nil {
			logger = infrastructure.GetLogger()
		}
		paths.LogPathResolution(logger)

		c.config = cfg
		c.paths = paths
		c.logger = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) pathsValue() *config.Paths {
	if _, err := c.ensureConfig(); err != nil {
		return nil
	}
	return c.paths
}

func (c *commandContext) loggerValue() *slog.Logger {
	if c.logger == nil {
		return infrastructure.GetLogger()
	}
	return c.logger
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
