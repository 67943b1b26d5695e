/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads grid and server configuration from defaults, an
// optional YAML file, GRIDGROUP_ environment variables and command line flags,
// in increasing order of priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/datasources"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// ConfigFileName is the name of the config file looked up in the working directory.
const ConfigFileName = "gridgroup.yaml"

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore, e.g. GRIDGROUP_GRID__GROUPEXPANDBYDEFAULT=false.
const EnvPrefix = "GRIDGROUP_"

// Config is the complete configuration.
type Config struct {
	Grid   grid.Options `koanf:"grid"`
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`

	// Sources lists the tables loaded at startup.
	Sources []datasources.Source `koanf:"sources"`

	// BaseDir is the directory relative source paths resolve against: the
	// directory of the config file, or the working directory.
	BaseDir string `koanf:"-"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdownTimeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"enable-grouping":   "grid.enableGrouping",
	"expand-by-default": "grid.groupExpandByDefault",
	"row-template":      "grid.groupingRowTemplate",
	"addr":              "server.addr",
	"log-level":         "log.level",
	"dev":               "log.development",
}

func defaults() map[string]interface{} {
	options := grid.DefaultOptions()
	return map[string]interface{}{
		"grid.enableGrouping":       options.EnableGrouping,
		"grid.groupExpandByDefault": options.GroupExpandByDefault,
		"grid.groupingRowTemplate":  options.GroupingRowTemplate,
		"grid.rowHeight":            options.RowHeight,
		"server.addr":               ":8097",
		"server.shutdownTimeout":    5 * time.Second,
		"log.level":                 "info",
		"log.development":           false,
	}
}

// envKey maps GRIDGROUP_GRID__ROWHEIGHT to grid.rowHeight. Unknown variables
// map to the empty key and are ignored.
func envKey(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__", ".")
	for known := range defaults() {
		if strings.EqualFold(known, key) {
			return known
		}
	}
	return ""
}

// Load builds the configuration. configFile may be empty, in which case
// ConfigFileName is used if it exists. flags may be nil; only flags that were
// explicitly set override other sources.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configFile == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			configFile = ConfigFileName
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Grid.ApplyDefaults()
	if configFile != "" {
		cfg.BaseDir = filepath.Dir(configFile)
	}
	return &cfg, nil
}

// NewLogger builds the zap logger described by the log configuration.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if c.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		zc.Level = level
	}
	return zc.Build()
}
