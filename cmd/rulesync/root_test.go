// cmd/rulesync/root_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the command tree wiring and flag registration

package rulesync

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "rulesync", root.Name())
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	for _, name := range []string{"sync", "list", "init", "gen-config", "watch", "completion"} {
		findCommand(t, root, name)
	}
}

func TestRootPersistentFlags(t *testing.T) {
	root := NewRootCmd()

	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("dry-run"))
	assert.NotNil(t, root.PersistentFlags().Lookup("format"))
}

func TestCommandGroups(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "core", findCommand(t, root, "sync").GroupID)
	assert.Equal(t, "core", findCommand(t, root, "list").GroupID)
	assert.Equal(t, "core", findCommand(t, root, "init").GroupID)
	assert.Equal(t, "core", findCommand(t, root, "watch").GroupID)
	assert.Equal(t, "misc", findCommand(t, root, "gen-config").GroupID)
	assert.Equal(t, "misc", findCommand(t, root, "completion").GroupID)
}

func TestSyncCmdFlags(t *testing.T) {
	syncCmd := findCommand(t, NewRootCmd(), "sync")

	assert.NotNil(t, syncCmd.Flags().Lookup("rules"))
	assert.NotNil(t, syncCmd.Flags().Lookup("map"))
	assert.NotNil(t, syncCmd.Flags().Lookup("backup"))
}

func TestGenConfigCmdFlags(t *testing.T) {
	genCmd := findCommand(t, NewRootCmd(), "gen-config")

	assert.NotNil(t, genCmd.Flags().Lookup("write"))
	assert.NotNil(t, genCmd.Flags().Lookup("format"))
	assert.NotNil(t, genCmd.Flags().Lookup("effective"))
}

func TestRootWithoutSubcommandFails(t *testing.T) {
	root := NewRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(nil)

	err := root.Execute()
	require.Error(t, err)
	// Help is still shown so the user sees the available commands
	assert.Contains(t, out.String(), "sync")
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	root := NewRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"completion", "tcsh"})

	assert.Error(t, root.Execute())
}
