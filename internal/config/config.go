// Package config handles .warboard.yaml and .warboard.toml configuration files.
package config

// Config represents the contents of a warboard config file.
type Config struct {
	Source       string                `yaml:"source,omitempty" toml:"source,omitempty"`
	Query        string                `yaml:"query,omitempty" toml:"query,omitempty"`
	OutputFormat string                `yaml:"output_format,omitempty" toml:"output_format,omitempty"`
	Output       string                `yaml:"output,omitempty" toml:"output,omitempty"`
	Top          int                   `yaml:"top,omitempty" toml:"top,omitempty"`
	Columns      []string              `yaml:"columns,omitempty" toml:"columns,omitempty"`
	Roles        map[string]RoleConfig `yaml:"roles,omitempty" toml:"roles,omitempty"`
	Metrics      []MetricConfig        `yaml:"metrics,omitempty" toml:"metrics,omitempty"`
	Serve        ServeConfig           `yaml:"serve,omitempty" toml:"serve,omitempty"`
}

// RoleConfig replaces the header matchers of one role. Index is 1-based.
type RoleConfig struct {
	Contains []string `yaml:"contains,omitempty" toml:"contains,omitempty"`
	Pattern  string   `yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Index    *int     `yaml:"index,omitempty" toml:"index,omitempty"`
	Hint     string   `yaml:"hint,omitempty" toml:"hint,omitempty"`
}

// MetricConfig defines or redefines one summary figure.
type MetricConfig struct {
	Name  string   `yaml:"name" toml:"name"`
	Label string   `yaml:"label,omitempty" toml:"label,omitempty"`
	Kind  string   `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Roles []string `yaml:"roles,omitempty" toml:"roles,omitempty"`
}

// ServeConfig holds live dashboard settings.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty" toml:"addr,omitempty"`
}

// FileName is the YAML config file name looked up in the working directory.
const FileName = ".warboard.yaml"

// TOMLFileName is the alternative TOML config file name. When both files
// exist, the YAML file is used.
const TOMLFileName = ".warboard.toml"
