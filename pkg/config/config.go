// Package config loads engine configuration: built-in defaults, an
// optional TOML file under the XDG config directory, then environment
// variables, each layer overriding the last.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fxmartin/create-project-sub002/pkg/errors"
)

const envPrefix = "CREATE_PROJECT_"

// Config holds engine-wide settings.
type Config struct {
	Output  OutputConfig  `koanf:"output"`
	Cache   CacheConfig   `koanf:"cache"`
	Logging LoggingConfig `koanf:"logging"`
	Render  RenderConfig  `koanf:"render"`
}

// OutputConfig controls generation defaults.
type OutputConfig struct {
	// Overwrite is the default for the generate command's flag.
	Overwrite bool `koanf:"overwrite"`
}

// CacheConfig controls the template cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LoggingConfig controls default verbosity.
type LoggingConfig struct {
	Verbosity int `koanf:"verbosity"`
}

// RenderConfig controls filesystem defaults for rendering.
type RenderConfig struct {
	// DirMode and FileMode are 3-digit octal strings used when a
	// structure item declares no permissions.
	DirMode  string `koanf:"dir_mode"`
	FileMode string `koanf:"file_mode"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"output.overwrite":  false,
		"cache.enabled":     true,
		"logging.verbosity": 0,
		"render.dir_mode":   "755",
		"render.file_mode":  "644",
	}
}

// Path returns the engine config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "create-project", "config.toml")
}

// Load assembles the layered configuration.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	path := Path()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment configuration")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
