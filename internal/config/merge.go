package config

// Merge combines two configs. Values set in higher take precedence; zero
// values fall through to lower. Role overrides merge per role, and a
// non-empty metric list in higher replaces lower's list.
func Merge(lower, higher *Config) *Config {
	if lower == nil {
		lower = &Config{}
	}
	if higher == nil {
		higher = &Config{}
	}
	result := *lower

	if higher.Source != "" {
		result.Source = higher.Source
	}
	if higher.Query != "" {
		result.Query = higher.Query
	}
	if higher.OutputFormat != "" {
		result.OutputFormat = higher.OutputFormat
	}
	if higher.Output != "" {
		result.Output = higher.Output
	}
	if higher.Top != 0 {
		result.Top = higher.Top
	}
	if len(higher.Columns) > 0 {
		result.Columns = higher.Columns
	}
	if len(higher.Metrics) > 0 {
		result.Metrics = higher.Metrics
	}
	if higher.Serve.Addr != "" {
		result.Serve.Addr = higher.Serve.Addr
	}

	if len(higher.Roles) > 0 {
		merged := make(map[string]RoleConfig, len(lower.Roles)+len(higher.Roles))
		for name, rc := range lower.Roles {
			merged[name] = rc
		}
		for name, rc := range higher.Roles {
			merged[name] = rc
		}
		result.Roles = merged
	}

	return &result
}
