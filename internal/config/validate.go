package config

import (
	"errors"
	"fmt"
	"net/url"

	"glidefront/internal/match"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFrontend(); err != nil {
		return err
	}
	if err := c.validateSchedds(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFrontend() error {
	if c.Frontend.Name == "" {
		return errors.New("frontend.name must be set")
	}
	if c.Frontend.FactoryPool == "" {
		return errors.New("frontend.factory_pool must be set")
	}
	parsed, err := url.Parse(c.Frontend.FactoryPool)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("frontend.factory_pool must be a valid URL, got %q", c.Frontend.FactoryPool)
	}
	if c.Frontend.MaxIdle <= 0 {
		return errors.New("frontend.max_idle must be positive")
	}
	if c.Frontend.ReserveIdle < 0 {
		return errors.New("frontend.reserve_idle must be >= 0")
	}
	if c.Frontend.RequestTimeout <= 0 {
		return errors.New("frontend.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateSchedds() error {
	if len(c.Schedds) == 0 {
		return errors.New("at least one [[schedds]] queue source must be configured")
	}
	seen := make(map[string]struct{}, len(c.Schedds))
	for i, schedd := range c.Schedds {
		if schedd.Name == "" {
			return fmt.Errorf("schedds[%d].name must be set", i)
		}
		if schedd.Path == "" {
			return fmt.Errorf("schedds[%d].path must be set", i)
		}
		if _, dup := seen[schedd.Name]; dup {
			return fmt.Errorf("duplicate schedd name %q", schedd.Name)
		}
		seen[schedd.Name] = struct{}{}
	}
	return nil
}

func (c *Config) validateMatch() error {
	if len(c.Match.Requirements) == 0 {
		return errors.New("match.requirements must contain at least one clause")
	}
	if _, err := match.CompileConstraint(c.Match.JobConstraint); err != nil {
		return fmt.Errorf("match.job_constraint: %w", err)
	}
	if _, err := match.Compile(c.Match.Requirements); err != nil {
		return fmt.Errorf("match.requirements: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	return nil
}
