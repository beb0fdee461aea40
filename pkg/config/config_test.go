// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (temp dirs)
// PURPOSE: Test configuration defaults, file merging and env overrides

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/paths"
)

// chdir moves into a fresh temp dir so cwd config candidates are controlled
func chdir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	// Keep the XDG candidate away from any real user config
	t.Setenv(paths.EnvConfigDir, filepath.Join(dir, "xdg-config"))

	return dir
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "agentic_rules.md", cfg.Rules.File)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.False(t, cfg.Output.Backup)
	assert.Equal(t, "CLAUDE.md", cfg.Targets["claude"])
	assert.Equal(t, "AGENTS.md", cfg.Targets["codex"])
	assert.Equal(t, ".cursorrules.mdc", cfg.Targets["cursor"])
	assert.Equal(t, ".windsurfrules", cfg.Targets["windsurf"])
}

func TestLoadWithoutConfigFile(t *testing.T) {
	chdir(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMergesConfigFile(t *testing.T) {
	dir := chdir(t)

	content := `
[rules]
file = "docs/rules.md"

[targets]
codex = "codex/AGENTS.md"
zed = ".rules"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rulesync.toml"), []byte(content), 0644))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "docs/rules.md", cfg.Rules.File)
	// Overridden and added targets merge over the defaults
	assert.Equal(t, "codex/AGENTS.md", cfg.Targets["codex"])
	assert.Equal(t, ".rules", cfg.Targets["zed"])
	assert.Equal(t, "CLAUDE.md", cfg.Targets["claude"])
}

func TestLoadYAMLConfigFile(t *testing.T) {
	dir := chdir(t)

	content := "output:\n  format: json\n  backup: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rulesync.yaml"), []byte(content), 0644))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Backup)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t)

	t.Setenv("RULESYNC_OUTPUT_FORMAT", "yaml")
	t.Setenv("RULESYNC_TARGETS_CLAUDE", "elsewhere/CLAUDE.md")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "elsewhere/CLAUDE.md", cfg.Targets["claude"])
}

func TestLoadIgnoresPathsEnvVars(t *testing.T) {
	chdir(t)

	// Owned by the paths layer; must not shadow the [rules] table
	t.Setenv(paths.EnvRulesFile, "/somewhere/rules.md")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "agentic_rules.md", cfg.Rules.File)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	dir := chdir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rulesync.toml"), []byte("not [valid toml"), 0644))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDefaultsContent(t *testing.T) {
	content := config.DefaultsContent()
	assert.Contains(t, content, "[targets]")
	assert.Contains(t, content, "agentic_rules.md")
}
