package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/warboard/warboard/internal/output"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Top < 0 {
		errs = append(errs, fmt.Sprintf("top: must be non-negative, got %d", cfg.Top))
	}

	for i, col := range cfg.Columns {
		if strings.TrimSpace(col) == "" {
			errs = append(errs, fmt.Sprintf("columns[%d]: must not be empty", i))
		}
	}

	if _, err := cfg.Rules(); err != nil {
		errs = append(errs, err.Error())
	}

	if _, err := cfg.MetricSet(); err != nil {
		errs = append(errs, err.Error())
	}

	if cfg.Serve.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Serve.Addr); err != nil {
			errs = append(errs, fmt.Sprintf("serve.addr: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
