// Package list implements the list command: show the effective target
// registry and whether each destination currently exists.
package list

import (
	"os"

	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/targets"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// ListOptions defines the options for the List command
type ListOptions struct {
	// RulesFile is the rules document path; see sync.SyncOptions
	RulesFile string

	// Mappings are TOOL:DEST overrides from the command line
	Mappings []string

	// Config overrides the loaded configuration (optional, for tests)
	Config *config.Config

	// FileSystem overrides the filesystem used for existence checks
	// (optional, for tests)
	FileSystem types.FS
}

// ListResult holds the effective target registry
type ListResult struct {
	Targets []types.TargetInfo `json:"targets" yaml:"targets"`
}

// List returns every configured target with its resolved destination and
// whether that destination exists on disk
func List(opts ListOptions) (*ListResult, error) {
	logger := logging.GetLogger("commands.list")
	logger.Debug().Str("command", "List").Msg("Executing command")

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	rulesFile := opts.RulesFile
	if rulesFile == "" && os.Getenv(paths.EnvRulesFile) == "" {
		rulesFile = cfg.Rules.File
	}
	p, err := paths.New(rulesFile)
	if err != nil {
		return nil, err
	}

	registry, err := targets.Build(cfg.Targets, opts.Mappings)
	if err != nil {
		return nil, err
	}

	result := &ListResult{}
	for _, t := range registry.All() {
		dest := p.ResolveDest(t.Dest)
		_, statErr := fsys.Stat(dest)
		result.Targets = append(result.Targets, types.TargetInfo{
			Name:   t.Name,
			Dest:   dest,
			Exists: statErr == nil,
		})
	}

	logger.Info().Int("targetCount", len(result.Targets)).Msg("Command finished")
	return result, nil
}
