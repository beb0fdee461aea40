package rulesync

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep one rules document, sync it to every AI tool"
	MsgSyncShort       = "Compose the rules document into every target file"
	MsgListShort       = "List configured targets and their destinations"
	MsgInitShort       = "Create a starter rules document"
	MsgGenConfigShort  = "Print or write the default configuration"
	MsgWatchShort      = "Sync, then re-sync whenever the rules document changes"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice = "\nDRY RUN MODE - No files were written"
	MsgInitCreated  = "Created rules document: %s\n"
	MsgWatchStarted = "Watching %s (ctrl-c to stop)\n"

	// Error messages
	MsgErrSync      = "failed to sync rules: %w"
	MsgErrList      = "failed to list targets: %w"
	MsgErrInit      = "failed to create rules document: %w"
	MsgErrGenConfig = "failed to generate config: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without writing any file"
	MsgFlagFormat  = "Output format: auto, term, text, json or yaml"
	MsgFlagRules   = "Path of the rules document (default: $RULESYNC_RULES or agentic_rules.md)"
	MsgFlagMap     = "Add or override a target as TOOL:DEST (repeatable)"
	MsgFlagBackup  = "Copy an existing destination to <dest>.bak before overwriting"
	MsgFlagWrite   = "Write config to file instead of stdout"
	MsgFlagCfgFmt  = "Config format: toml or yaml"
	MsgFlagEffect  = "Emit the effective merged configuration"
)

// Long messages
const (
	MsgRootLong = `rulesync keeps a single canonical rules document and syncs it into the
per-tool rule files that AI coding assistants read (CLAUDE.md, AGENTS.md,
.cursorrules.mdc, .windsurfrules, ...).

Sections of the document can be scoped to a subset of tools:

  ::only cursor,windsurf
  lines here only reach cursor and windsurf
  ::end

Everything outside ::only/::end blocks is shared by every target.`

	MsgSyncLong = `Sync reads the rules document, splits it into shared and per-tool
sections, and writes each target's destination file.

With no arguments every configured target is synced; naming targets
restricts the run to those. A malformed ::only directive aborts the run
before any file is written.`

	MsgSyncExample = `  # Sync every configured target
  rulesync sync

  # Preview without writing
  rulesync sync --dry-run

  # Only two targets, one with a custom destination
  rulesync sync cursor windsurf --map windsurf:~/notes/.windsurfrules`

	MsgListLong = `List shows the effective target registry: built-in defaults merged with
the config file's [targets] table and any --map flags, along with whether
each destination file currently exists.`

	MsgGenConfigLong = `gen-config prints the default configuration. With --write it creates
.rulesync.toml (or .rulesync.yaml) in the current directory instead;
existing files are never overwritten.`

	MsgWatchLong = `Watch runs a sync, then watches the rules document and re-syncs after
every change. Saves are debounced so editor write bursts trigger a single
sync. Stops on interrupt.`
)
