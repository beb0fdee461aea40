// Package sync implements the main rulesync operation: parse the canonical
// rules document, compose per-target content, and write every destination.
package sync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/compose"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/rules"
	"github.com/arthur-debert/rulesync/pkg/synthfs"
	"github.com/arthur-debert/rulesync/pkg/targets"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Executor executes the file operations a sync run produces. The default is
// the synthfs-backed executor; tests substitute a recording fake.
type Executor interface {
	ExecuteOperations(ctx context.Context, ops []types.Operation) error
}

// SyncOptions defines the options for the Sync command
type SyncOptions struct {
	// RulesFile is the rules document path. Empty means: RULESYNC_RULES,
	// then the configured rules.file, then agentic_rules.md.
	RulesFile string

	// TargetNames restricts the run to the named targets. Empty means all
	// configured targets.
	TargetNames []string

	// Mappings are TOOL:DEST overrides from the command line
	Mappings []string

	// DryRun previews the run without touching any file
	DryRun bool

	// Backup copies an existing destination to <dest>.bak before overwriting
	Backup bool

	// Config overrides the loaded configuration (optional, for tests)
	Config *config.Config

	// FileSystem overrides the filesystem used for reads and existence
	// checks (optional, for tests)
	FileSystem types.FS

	// Executor overrides the operation executor (optional, for tests)
	Executor Executor
}

// SyncResult holds the outcome of a sync run
type SyncResult struct {
	// RulesFile is the resolved path of the parsed rules document
	RulesFile string `json:"rules_file" yaml:"rules_file"`

	// DryRun reports whether the run was a preview
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Targets are the composed per-target outputs in name order
	Targets []types.TargetOutput `json:"targets" yaml:"targets"`

	// Operations are the file operations the run produced
	Operations []types.Operation `json:"-" yaml:"-"`
}

// Sync composes the rules document into every configured target file.
// A malformed directive aborts the whole run before any operation is built,
// so a bad document can never produce partial output.
func Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	logger := logging.GetLogger("commands.sync")

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

	logger.Debug().
		Str("rulesFile", p.RulesFile()).
		Strs("targets", opts.TargetNames).
		Bool("dryRun", opts.DryRun).
		Msg("Executing command")

	data, err := fsys.ReadFile(p.RulesFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrRulesNotFound,
				"rules document not found: %s", p.RulesFile())
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead,
			"failed to read rules document %s", p.RulesFile())
	}

	doc := rules.NewDocument(p.RulesFile(), string(data))
	buckets, err := rules.Parse(doc)
	if err != nil {
		return nil, err
	}

	registry, err := targets.Build(cfg.Targets, opts.Mappings)
	if err != nil {
		return nil, err
	}
	registry, err = registry.Filter(opts.TargetNames)
	if err != nil {
		return nil, err
	}

	outputs, err := compose.ComposeAll(ctx, buckets, registry)
	if err != nil {
		return nil, err
	}

	backup := opts.Backup || cfg.Output.Backup
	result := &SyncResult{
		RulesFile: p.RulesFile(),
		DryRun:    opts.DryRun,
	}

	for _, t := range registry.All() {
		dest := p.ResolveDest(t.Dest)
		content := outputs[t.Name]

		destExists := false
		if _, err := fsys.Stat(dest); err == nil {
			destExists = true
		}

		if backup && destExists {
			result.Operations = append(result.Operations, types.Operation{
				Type:        types.OperationBackupFile,
				Source:      dest,
				Target:      dest + ".bak",
				Description: "Back up " + dest,
				Status:      types.StatusReady,
			})
		}

		if dir := filepath.Dir(dest); dirMissing(fsys, dir) {
			result.Operations = append(result.Operations, types.Operation{
				Type:        types.OperationCreateDir,
				Target:      dir,
				Description: "Create directory " + dir,
				Status:      types.StatusReady,
			})
		}

		result.Operations = append(result.Operations, types.Operation{
			Type:        types.OperationWriteFile,
			Target:      dest,
			Content:     content,
			Description: "Write " + t.Name + " rules to " + dest,
			Status:      types.StatusReady,
		})

		result.Targets = append(result.Targets, types.TargetOutput{
			Name:    t.Name,
			Dest:    dest,
			Content: content,
			Written: !opts.DryRun,
		})
	}

	executor := opts.Executor
	if executor == nil {
		executor = synthfs.NewExecutor(opts.DryRun, p)
	}
	if err := executor.ExecuteOperations(ctx, result.Operations); err != nil {
		return nil, err
	}

	logger.Info().
		Int("targetCount", len(result.Targets)).
		Bool("dryRun", opts.DryRun).
		Msg("Command finished")

	return result, nil
}

func dirMissing(fsys types.FS, dir string) bool {
	if dir == "." || dir == "/" {
		return false
	}
	_, err := fsys.Stat(dir)
	return err != nil
}
