package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/rulesync/pkg/types"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderTargetList(targets []types.TargetInfo) string
	RenderOutputs(outputs []types.TargetOutput) string
	RenderPreview(outputs []types.TargetOutput) string
	RenderOperations(ops []types.Operation) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	width    int
	markdown bool
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		width:    80, // Default width, can be updated
		markdown: true,
	}
}

// SetWidth updates the terminal width for rendering
func (r *TerminalRenderer) SetWidth(width int) {
	r.width = width
}

// SetMarkdown toggles markdown rendering of preview content
func (r *TerminalRenderer) SetMarkdown(enabled bool) {
	r.markdown = enabled
}

// RenderTargetList renders the effective target registry
func (r *TerminalRenderer) RenderTargetList(targets []types.TargetInfo) string {
	if len(targets) == 0 {
		return MutedStyle.Render("No targets configured")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Targets") + "\n\n")

	for _, t := range targets {
		indicator := MissingIndicator
		if t.Exists {
			indicator = SuccessIndicator
		}
		line := fmt.Sprintf("%s %s %s %s",
			indicator, Bold(t.Name), pterm.ThemeDefault.SecondaryStyle.Sprint("→"),
			PathStyle.Render(t.Dest))
		result.WriteString(line + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderOutputs renders per-target sync results
func (r *TerminalRenderer) RenderOutputs(outputs []types.TargetOutput) string {
	if len(outputs) == 0 {
		return MutedStyle.Render("No targets to sync")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Synced") + "\n\n")

	for _, out := range outputs {
		indicator := SuccessStyle.Render(SuccessIndicator)
		if !out.Written {
			indicator = MutedStyle.Render(PendingIndicator)
		}
		line := fmt.Sprintf("%s %s %s", indicator, Bold(out.Name), PathStyle.Render(out.Dest))
		result.WriteString(line + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderPreview renders each target's composed content under a banner,
// without touching any file
func (r *TerminalRenderer) RenderPreview(outputs []types.TargetOutput) string {
	var result strings.Builder

	for i, out := range outputs {
		if i > 0 {
			result.WriteString("\n")
		}
		banner := fmt.Sprintf("--- %s (%s) ---", out.Name, out.Dest)
		result.WriteString(BannerStyle.Render(banner) + "\n")
		result.WriteString(r.renderMarkdown(out.Content))
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderMarkdown renders content through glamour, falling back to the plain
// text when rendering fails or markdown is disabled
func (r *TerminalRenderer) renderMarkdown(content string) string {
	if !r.markdown {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// RenderOperations renders a list of operations
func (r *TerminalRenderer) RenderOperations(ops []types.Operation) string {
	if len(ops) == 0 {
		return MutedStyle.Render("No operations to perform")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Operations") + "\n\n")

	for _, op := range ops {
		result.WriteString(r.renderOperation(op) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderOperation renders a single operation
func (r *TerminalRenderer) renderOperation(op types.Operation) string {
	var indicator string
	switch op.Status {
	case types.StatusReady:
		indicator = MutedStyle.Render(PendingIndicator)
	case types.StatusSkipped:
		indicator = MutedStyle.Render(MissingIndicator)
	case types.StatusError:
		indicator = ErrorStyle.Render(ErrorIndicator)
	default:
		indicator = MutedStyle.Render(PendingIndicator)
	}

	return fmt.Sprintf("%s %s", indicator, NormalStyle.Render(op.Description))
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", err))
}
