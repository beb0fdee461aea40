// pkg/ui/format_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test output format parsing and detection

package ui_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/ui"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ui.Format
		wantErr bool
	}{
		{name: "auto", input: "auto", want: ui.FormatAuto},
		{name: "empty_is_auto", input: "", want: ui.FormatAuto},
		{name: "term", input: "term", want: ui.FormatTerminal},
		{name: "terminal_alias", input: "terminal", want: ui.FormatTerminal},
		{name: "text", input: "text", want: ui.FormatText},
		{name: "plain_alias", input: "plain", want: ui.FormatText},
		{name: "json", input: "json", want: ui.FormatJSON},
		{name: "yaml", input: "yaml", want: ui.FormatYAML},
		{name: "yml_alias", input: "yml", want: ui.FormatYAML},
		{name: "case_insensitive", input: "JSON", want: ui.FormatJSON},
		{name: "unknown", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "term", ui.FormatTerminal.String())
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "json", ui.FormatJSON.String())
	assert.Equal(t, "yaml", ui.FormatYAML.String())
}

func TestDetectFormatNonTTY(t *testing.T) {
	// A regular file is not a terminal
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
}

func TestResolve(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	t.Run("explicit_format_kept", func(t *testing.T) {
		format, err := ui.Resolve("json", f)
		require.NoError(t, err)
		assert.Equal(t, ui.FormatJSON, format)
	})

	t.Run("auto_detects", func(t *testing.T) {
		format, err := ui.Resolve("auto", f)
		require.NoError(t, err)
		assert.Equal(t, ui.FormatText, format)
	})

	t.Run("unknown_errors", func(t *testing.T) {
		_, err := ui.Resolve("bogus", f)
		assert.Error(t, err)
	})
}
