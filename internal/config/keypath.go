package config

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Key paths address config settings with dots: "top", "serve.addr",
// "roles.total_kills.pattern". The set of valid paths is read off the yaml
// tags of Config, so new fields need no changes here.

// GetValue returns the setting at keyPath. Leaves come back as scalars,
// inner nodes as maps.
func GetValue(cfg *Config, keyPath string) (any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return navigateMap(m, keyPath)
}

// SetValue stores rawValue, coerced to a bool or number when it reads as
// one, at keyPath in a raw config map. Missing parents are created.
func SetValue(data map[string]any, keyPath string, rawValue string) error {
	parts := strings.Split(keyPath, ".")
	leaf := parts[len(parts)-1]

	node := data
	for _, part := range parts[:len(parts)-1] {
		switch child := node[part].(type) {
		case nil:
			next := make(map[string]any)
			node[part] = next
			node = next
		case map[string]any:
			node = child
		default:
			return fmt.Errorf("key %q is not a map", part)
		}
	}
	node[leaf] = coerceValue(rawValue)
	return nil
}

// FlattenMap turns nested maps into one level keyed by dotted paths.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		sub, ok := v.(map[string]any)
		if !ok {
			flat[k] = v
			continue
		}
		maps.Copy(flat, FlattenMap(sub, k))
	}
	return flat
}

// ValidateKeyPath reports whether keyPath names a single settable value.
// Lists are rejected; they have to be edited in the file.
func ValidateKeyPath(keyPath string) error {
	parts := strings.Split(keyPath, ".")
	if parts[0] == "" {
		return fmt.Errorf("empty key path")
	}

	t := reflect.TypeOf(Config{})
	noun := "key"
	for depth, part := range parts {
		switch t.Kind() {
		case reflect.Struct:
			fields := yamlFields(t)
			f, ok := fields[part]
			if !ok {
				if depth == 0 {
					return fmt.Errorf("unknown key %q; valid top-level keys: %s", part, sortedKeys(fieldSet(fields)))
				}
				return fmt.Errorf("unknown %s %q; valid fields: %s", noun, part, sortedKeys(fieldSet(fields)))
			}
			t = f.Type
			noun = strings.TrimSuffix(part, "s") + " field"
		case reflect.Map:
			if part == "" {
				return fmt.Errorf("empty role name")
			}
			t = t.Elem()
		default:
			if depth == 1 {
				return fmt.Errorf("key %q is a scalar; cannot use sub-keys", parts[0])
			}
			return fmt.Errorf("key path too deep: %q", keyPath)
		}

		if t.Kind() == reflect.Slice {
			return fmt.Errorf("%s is a list and cannot be set via config set; edit %s directly", strings.Join(parts[:depth+1], "."), FileName)
		}
	}

	switch t.Kind() {
	case reflect.Map:
		return fmt.Errorf("%s requires a role name (e.g. %s.total_kills)", keyPath, keyPath)
	case reflect.Struct:
		if parts[0] == "roles" {
			// A whole role block may be addressed, e.g. roles.power.
			return nil
		}
		return fmt.Errorf("%s requires a field (e.g. %s.%s)", keyPath, keyPath, firstKey(yamlFields(t)))
	}
	return nil
}

func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

func navigateMap(m map[string]any, keyPath string) (any, error) {
	var node any = m
	for _, part := range strings.Split(keyPath, ".") {
		parent, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q: parent is not a map", part)
		}
		if node, ok = parent[part]; !ok {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
	}
	return node, nil
}

// coerceValue reads s as a bool, an int, a decimal, or leaves it a string.
// "3" stays an int.
func coerceValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// yamlFields maps each yaml key of struct type t to its field.
func yamlFields(t reflect.Type) map[string]reflect.StructField {
	out := make(map[string]reflect.StructField, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			out[name] = f
		}
	}
	return out
}

func fieldSet(fields map[string]reflect.StructField) map[string]bool {
	out := make(map[string]bool, len(fields))
	for k := range fields {
		out[k] = true
	}
	return out
}

func firstKey(fields map[string]reflect.StructField) string {
	return slices.Sorted(maps.Keys(fields))[0]
}

// sortedKeys joins the keys of m in order.
func sortedKeys(m map[string]bool) string {
	return strings.Join(slices.Sorted(maps.Keys(m)), ", ")
}
