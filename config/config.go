/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads the runtime configuration: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/tomoncle/seedwork/database"
)

// DefaultEnvPrefix is used by Load when no prefix is given.
const DefaultEnvPrefix = "SEEDWORK"

var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"config/config.yaml",
	"config/config.yml",
}

type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

type Config struct {
	Log      LogConfig       `koanf:"log" yaml:"log"`
	Database database.Config `koanf:"database" yaml:"database"`
}

// Default returns the configuration used when no source overrides it.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Database: *database.DefaultConfig(),
	}
}

func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"log.level":                 d.Log.Level,
		"log.format":                d.Log.Format,
		"database.enabled":          d.Database.Enabled,
		"database.name":             d.Database.Name,
		"database.connect_timeout":  d.Database.ConnectTimeout,
		"database.enable_query_log": d.Database.EnableQueryLog,
		"database.slow_query_time":  d.Database.SlowQueryTime,
	}
}

// Load merges, later overriding earlier:
//  1. Default()
//  2. the YAML file at path; when path is empty the first existing file among
//     config.{yaml,yml} and config/config.{yaml,yml} is used, if any
//  3. environment variables starting with envPrefix + "_"
//
// Environment keys split on their first underscore only, so
// SEEDWORK_DATABASE_SLOW_QUERY_TIME sets database.slow_query_time.
func Load(path, envPrefix string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if path == "" {
		path, _ = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	if envPrefix == "" {
		envPrefix = DefaultEnvPrefix
	}
	prefix := strings.ToUpper(strings.TrimSuffix(envPrefix, "_")) + "_"
	if err := k.Load(env.Provider(prefix, ".", envKeyTransform(prefix)), nil); err != nil {
		return nil, fmt.Errorf("config: loading env: %w", err)
	}

	cfg := &Config{}
	err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			Result:           cfg,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKeyTransform(prefix string) func(string) string {
	return func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, prefix))
		section, rest, ok := strings.Cut(s, "_")
		if !ok {
			return section
		}
		return section + "." + rest
	}
}

func findConfigFile() (string, bool) {
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Validate rejects settings the database manager cannot honour.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Enabled && strings.TrimSpace(c.Database.Name) == "" {
		errs = append(errs, errors.New("database.name is required when the database is enabled"))
	}
	if c.Database.ConnectTimeout < 0 {
		errs = append(errs, errors.New("database.connect_timeout must not be negative"))
	}
	if c.Database.SlowQueryTime < 0 {
		errs = append(errs, errors.New("database.slow_query_time must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
