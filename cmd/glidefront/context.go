package main

import (
	"time"

	"glidefront/internal/config"
	"glidefront/internal/pool"
)

// commandContext lazily loads configuration shared across subcommands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	cfgPath    string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configValue() string {
	if c.configFlag == nil {
		return ""
	}
	return *c.configFlag
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, path, err := config.Load(c.configValue())
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = path
	return cfg, nil
}

func (c *commandContext) poolClient() (*pool.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return pool.NewClient(cfg.Frontend.FactoryPool, cfg.Frontend.Name,
		time.Duration(cfg.Frontend.RequestTimeout)*time.Second), nil
}
