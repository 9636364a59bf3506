// Package config reads command-line flag values from TOML files.
//
// Keys are flag names with dashes replaced by underscores:
//
//	workers = 8
//	probe_timeout = "90s"
//	log_file = "/var/log/videocatalog.log"
//
// Dotted flag names may also be written as nested tables.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up in the working directory
const FileName = "videocatalog.toml"

// DefaultPaths returns the configuration files consulted when present.
// Kong lets later files win, so the working directory file comes last.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "videocatalog", "config.toml"))
	}
	return append(paths, FileName)
}

// TOML is a kong.ConfigurationLoader for TOML documents
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		name := strings.ReplaceAll(flag.Name, "-", "_")
		if raw, ok := values[name]; ok {
			return flagValue(raw), nil
		}

		var raw any = values
		for _, part := range strings.Split(name, ".") {
			table, ok := raw.(map[string]any)
			if !ok {
				return nil, nil
			}
			if raw, ok = table[part]; !ok {
				return nil, nil
			}
		}
		return flagValue(raw), nil
	}
	return f, nil
}

// flagValue renders TOML scalars as strings so every kong mapper can parse them
func flagValue(raw any) any {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		return nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
