package rulesync

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/rulesync/pkg/commands/list"
	synccmd "github.com/arthur-debert/rulesync/pkg/commands/sync"
	"github.com/arthur-debert/rulesync/pkg/style"
	"github.com/arthur-debert/rulesync/pkg/ui"
	uijson "github.com/arthur-debert/rulesync/pkg/ui/json"
	uiyaml "github.com/arthur-debert/rulesync/pkg/ui/yaml"
)

// resolveFormat reads the persistent --format flag and resolves auto
// against stdout
func resolveFormat(cmd *cobra.Command) (ui.Format, error) {
	formatStr, _ := cmd.Root().PersistentFlags().GetString("format")
	return ui.Resolve(formatStr, os.Stdout)
}

// renderSyncResult renders a sync run in the requested format
func renderSyncResult(cmd *cobra.Command, result *synccmd.SyncResult) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}

	switch format {
	case ui.FormatJSON:
		return uijson.New(os.Stdout).RenderResult(result)
	case ui.FormatYAML:
		return uiyaml.New(os.Stdout).RenderResult(result)
	}

	renderer := style.NewTerminalRenderer()
	renderer.SetMarkdown(format == ui.FormatTerminal)

	if result.DryRun {
		fmt.Println(renderer.RenderPreview(result.Targets))
		fmt.Println(MsgDryRunNotice)
		return nil
	}

	fmt.Println(renderer.RenderOutputs(result.Targets))
	return nil
}

// renderListResult renders the target registry in the requested format
func renderListResult(cmd *cobra.Command, result *list.ListResult) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}

	switch format {
	case ui.FormatJSON:
		return uijson.New(os.Stdout).RenderResult(result)
	case ui.FormatYAML:
		return uiyaml.New(os.Stdout).RenderResult(result)
	}

	renderer := style.NewTerminalRenderer()
	fmt.Println(renderer.RenderTargetList(result.Targets))
	return nil
}
