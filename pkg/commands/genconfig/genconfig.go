// Package genconfig implements the gen-config command: print or write the
// default configuration.
package genconfig

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// GenConfigOptions defines the options for the GenConfig command
type GenConfigOptions struct {
	// Write writes the config next to the current directory instead of
	// returning it for stdout
	Write bool

	// Format selects the marshaler: "toml" (default) or "yaml"
	Format string

	// Effective emits the merged configuration (defaults, config file,
	// environment) instead of the commented defaults
	Effective bool

	// FileSystem overrides the filesystem (optional, for tests)
	FileSystem types.FS
}

// GenConfigResult holds the generated configuration
type GenConfigResult struct {
	// ConfigContent is the marshaled default configuration
	ConfigContent string `json:"config_content" yaml:"config_content"`

	// FilesWritten lists the files created in write mode
	FilesWritten []string `json:"files_written" yaml:"files_written"`
}

// GenConfig outputs or writes the default configuration
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	format := opts.Format
	if format == "" {
		format = "toml"
	}

	var content string
	switch format {
	case "toml":
		if opts.Effective {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			marshaled, err := MarshalTOML(cfg)
			if err != nil {
				return nil, err
			}
			content = marshaled
		} else {
			// The embedded defaults carry usage comments; prefer them verbatim
			content = config.DefaultsContent()
		}
	case "yaml", "yml":
		cfg := config.Default()
		if opts.Effective {
			loaded, err := config.Load()
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal config as YAML")
		}
		content = string(data)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unknown config format: %s (expected toml or yaml)", format)
	}

	result := &GenConfigResult{ConfigContent: content}

	if !opts.Write {
		logger.Debug().Str("format", format).Msg("Outputting config to stdout")
		return result, nil
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	targetPath := ".rulesync.toml"
	if format != "toml" {
		targetPath = ".rulesync.yaml"
	}

	if _, err := fsys.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := fsys.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write config to %s", targetPath)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}

// MarshalTOML marshals a configuration as TOML. Used when emitting the
// effective (merged) configuration rather than the commented defaults.
func MarshalTOML(cfg *config.Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal config as TOML")
	}
	return string(data), nil
}
