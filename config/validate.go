package config

import (
	"fmt"
	"strings"
)

func (c *Config) Validate() error {
	if c.Catalog.Concurrency <= 0 {
		return fmt.Errorf("catalog.concurrency must be > 0 (got %d)", c.Catalog.Concurrency)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be > 0 (got %v)", c.Catalog.Timeout)
	}
	if c.Registrar.StartId < 0 {
		return fmt.Errorf("registrar.start_id must be >= 0 (got %d)", c.Registrar.StartId)
	}
	if len(c.Output.Palette) == 0 {
		return fmt.Errorf("output.palette must not be empty")
	}
	for i, color := range c.Output.Palette {
		if strings.TrimSpace(color) == "" {
			return fmt.Errorf("output.palette[%d] is blank", i)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}
