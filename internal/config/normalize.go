package config

import "strings"

func (c *Config) normalize() error {
	logDir, err := expandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}
	c.Paths.LogDir = logDir

	c.Frontend.Name = strings.TrimSpace(c.Frontend.Name)
	c.Frontend.FactoryPool = strings.TrimRight(strings.TrimSpace(c.Frontend.FactoryPool), "/")

	for i := range c.Schedds {
		c.Schedds[i].Name = strings.TrimSpace(c.Schedds[i].Name)
		path, err := expandPath(strings.TrimSpace(c.Schedds[i].Path))
		if err != nil {
			return err
		}
		c.Schedds[i].Path = path
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
