package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/warboard/warboard/internal/config"
)

// configGlobal points get and set at the global file.
var configGlobal bool

// configCmd groups get, set and list.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify warboard configuration",
	Long: `View and modify warboard configuration.

Warboard reads configuration from .warboard.yaml (or .warboard.toml) in the
config directory, which defaults to the working directory. A global config
at ~/.config/warboard/config.yaml provides defaults. Local settings override
global settings.

Note: config set does a YAML round-trip and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

// configGetCmd prints the effective value at a dotted key.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  warboard config get source
  warboard config get roles.total_kills.pattern
  warboard config get roles
  warboard config get --global output_format`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, float, or string.
By default, writes to .warboard.yaml in the config directory.
Use --global to write to ~/.config/warboard/config.yaml.

Note: This does a YAML round-trip and will not preserve comments.

Examples:
  warboard config set source "https://docs.google.com/.../pub?output=csv"
  warboard config set top 10
  warboard config set roles.requirements_pct.index 18
  warboard config set --global output_format markdown`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the local config (.warboard.yaml) or global config
(~/.config/warboard/config.yaml). Local values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/warboard/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/warboard/config.yaml)")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

func resetConfigFlags() {
	configGlobal = false
	for _, c := range []*cobra.Command{configGetCmd, configSetCmd} {
		if f := c.Flags().Lookup("global"); f != nil {
			_ = f.Value.Set("false")
		}
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	load := func() (*config.Config, error) { return config.Resolve(configDir) }
	if configGlobal {
		load = config.LoadGlobal
	}
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return err
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if err := config.ValidateKeyPath(key); err != nil {
		return err
	}

	path := filepath.Join(configDir, config.FileName)
	if configGlobal {
		path = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	if err := config.SetValue(data, key, raw); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}
	if err := checkRaw(data); err != nil {
		return err
	}
	if err := config.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, raw)
	return nil
}

// checkRaw decodes an edited raw map into Config so a bad value never
// reaches disk.
func checkRaw(data map[string]any) error {
	encoded, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(encoded, &cfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	return config.Validate(&cfg)
}

// setting is one flattened config value and the file it came from.
type setting struct {
	value  any
	source string
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	localCfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading local config: %w", err)
	}

	settings := make(map[string]setting)
	for _, layer := range []struct {
		cfg    *config.Config
		source string
	}{{globalCfg, "global"}, {localCfg, "local"}} {
		flat, err := configToFlatMap(layer.cfg)
		if err != nil {
			return err
		}
		for k, v := range flat {
			settings[k] = setting{value: v, source: layer.source}
		}
	}

	if len(settings) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'warboard config set source <url>' to point warboard at your sheet.")
		return nil
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sources := map[string]*color.Color{
		"global": color.New(color.FgCyan),
		"local":  color.New(color.FgGreen),
	}
	for _, k := range keys {
		s := settings[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, s.value, sources[s.source].Sprintf("(%s)", s.source))
	}
	return nil
}

// printValue writes scalars on one line and blocks as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// configToFlatMap keys every non-zero setting of cfg by its dotted path.
func configToFlatMap(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return config.FlattenMap(m, ""), nil
}
