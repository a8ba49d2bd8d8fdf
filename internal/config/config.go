// Package config loads mgolc's TOML configuration file (spec.md §6's
// compile-time defaults, widened to a real config surface).
//
// Grounded on server.Config's FillDefaults/Validate pattern
// (dekarrin-tunaq/server/config.go) and tqw.ScanFileInfo's use of
// github.com/BurntSushi/toml for decoding.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Cache configures the optional sqlite parse-table cache.
type Cache struct {
	Path string `toml:"path"`
}

// Server configures the optional compile server.
type Server struct {
	Listen       string `toml:"listen"`
	JWTSecret    string `toml:"jwt_secret"`
	AdminKeyHash string `toml:"admin_key_hash"`
}

// Config is mgolc's full configuration, loadable from an optional TOML
// file and overridable by CLI flags.
type Config struct {
	ActionTable string `toml:"action_table"`
	GotoTable   string `toml:"goto_table"`
	Source      string `toml:"source"`
	Output      string `toml:"output"`
	Cache       Cache  `toml:"cache"`
	Server      Server `toml:"server"`
}

// Default returns the built-in defaults, used when no config file is
// given and no flag overrides a field.
func Default() Config {
	return Config{
		ActionTable: "./tables/action_table.csv",
		GotoTable:   "./tables/goto_table.csv",
		Source:      "./test/teste.mgol",
		Output:      "./PROGRAMA.c",
	}
}

// Load reads a TOML config file at path and returns it merged over the
// built-in defaults: any field left zero-valued in the file keeps the
// default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var fromFile Config
	if _, err := toml.DecodeFile(path, &fromFile); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if fromFile.ActionTable != "" {
		cfg.ActionTable = fromFile.ActionTable
	}
	if fromFile.GotoTable != "" {
		cfg.GotoTable = fromFile.GotoTable
	}
	if fromFile.Source != "" {
		cfg.Source = fromFile.Source
	}
	if fromFile.Output != "" {
		cfg.Output = fromFile.Output
	}
	if fromFile.Cache.Path != "" {
		cfg.Cache.Path = fromFile.Cache.Path
	}
	if fromFile.Server.Listen != "" {
		cfg.Server.Listen = fromFile.Server.Listen
	}
	if fromFile.Server.JWTSecret != "" {
		cfg.Server.JWTSecret = fromFile.Server.JWTSecret
	}
	if fromFile.Server.AdminKeyHash != "" {
		cfg.Server.AdminKeyHash = fromFile.Server.AdminKeyHash
	}

	return cfg, nil
}
