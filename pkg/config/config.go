// Package config loads rulesync configuration: embedded defaults, an
// optional config file, and RULESYNC_-prefixed environment variables,
// merged in that order.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/paths"
)

// Config is the effective rulesync configuration
type Config struct {
	Rules   RulesConfig       `koanf:"rules" toml:"rules" yaml:"rules"`
	Targets map[string]string `koanf:"targets" toml:"targets" yaml:"targets"`
	Output  OutputConfig      `koanf:"output" toml:"output" yaml:"output"`
}

// RulesConfig configures the canonical rules document
type RulesConfig struct {
	// File is the path of the rules document, relative to the working
	// directory unless absolute
	File string `koanf:"file" toml:"file" yaml:"file"`
}

// OutputConfig configures how composed results are presented and written
type OutputConfig struct {
	// Format is the default output format (auto, term, text, json, yaml)
	Format string `koanf:"format" toml:"format" yaml:"format"`

	// Backup makes sync copy an existing destination aside before overwriting
	Backup bool `koanf:"backup" toml:"backup" yaml:"backup"`
}

// Load builds the effective configuration: embedded defaults, the first
// config file found (see paths.ConfigFileCandidates), then environment
// variables with the RULESYNC_ prefix.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. First config file found, if any
	if path, ok := findConfigFile(); ok {
		parser := parserFor(path)
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load config from %s", path)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider("RULESYNC_", ".", envKeyTransform), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	return unmarshal(k)
}

// Default returns the embedded default configuration only
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		// Embedded defaults are compiled in and always parse
		return &Config{}
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return &Config{}
	}
	return cfg
}

// DefaultsContent returns the embedded defaults file verbatim
func DefaultsContent() string {
	return string(defaultConfig)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
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
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKeyTransform maps RULESYNC_OUTPUT_FORMAT to output.format. Variables
// owned by the paths layer (RULESYNC_RULES and the directory overrides) are
// skipped so they don't collide with config table names.
func envKeyTransform(s string) string {
	switch s {
	case paths.EnvRulesFile, paths.EnvConfigDir, paths.EnvDataDir:
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "RULESYNC_")), "_", ".")
}

func findConfigFile() (string, bool) {
	for _, candidate := range paths.ConfigFileCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}
