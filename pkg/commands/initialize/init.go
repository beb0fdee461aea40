// Package initialize implements the init command: scaffold a starter rules
// document.
package initialize

import (
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// starterDocument is the scaffold written by init. It demonstrates the
// ::only/::end directive syntax on real content.
const starterDocument = `# Agentic rules

Rules in this file are synced to every configured tool with ` + "`rulesync sync`" + `.

## General

- Prefer small, focused changes.
- Run the test suite before committing.

::only cursor,windsurf
## Editor-specific

- These lines only end up in the cursor and windsurf rule files.
::end

## Style

- Match the conventions of the surrounding code.
`

// InitRulesOptions defines the options for the InitRules command
type InitRulesOptions struct {
	// Path is where the rules document is created. Empty resolves the
	// default location (RULESYNC_RULES or ./agentic_rules.md).
	Path string

	// FileSystem overrides the filesystem (optional, for tests)
	FileSystem types.FS
}

// InitRulesResult holds the outcome of scaffolding
type InitRulesResult struct {
	// Path is the file that was created
	Path string `json:"path" yaml:"path"`
}

// InitRules writes a starter rules document. It refuses to overwrite an
// existing file.
func InitRules(opts InitRulesOptions) (*InitRulesResult, error) {
	logger := logging.GetLogger("commands.initialize")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	p, err := paths.New(opts.Path)
	if err != nil {
		return nil, err
	}
	path := p.RulesFile()

	logger.Debug().Str("path", path).Msg("Executing command")

	if _, err := fsys.Stat(path); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists,
			"rules document already exists: %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create directory %s", dir)
		}
	}

	if err := fsys.WriteFile(path, []byte(starterDocument), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write rules document %s", path)
	}

	logger.Info().Str("path", path).Msg("Rules document created")
	return &InitRulesResult{Path: path}, nil
}
