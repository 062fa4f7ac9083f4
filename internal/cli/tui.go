package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/typeset-go/typeset/pkg/doc"
)

// Preview styles.
var (
	previewRulerStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewOverStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PreviewModel - Interactive width preview
// =============================================================================

// PreviewModel is the bubbletea model for the interactive width
// preview. The compiled document is fixed; arrow keys change the
// buffer width and the indent step, and the output re-renders live.
type PreviewModel struct {
	Doc    *doc.Document
	Width  int // buffer width
	Indent int // indent width
}

// NewPreviewModel creates a preview model for a compiled document.
func NewPreviewModel(d *doc.Document, width, indent int) PreviewModel {
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	return PreviewModel{Doc: d, Width: width, Indent: indent}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Width > 1 {
				m.Width--
			}
		case "right", "l":
			m.Width++
		case "down", "j":
			if m.Indent > 0 {
				m.Indent--
			}
		case "up", "k":
			m.Indent++
		}
	case tea.WindowSizeMsg:
		if msg.Width > 2 && m.Width > msg.Width-2 {
			m.Width = msg.Width - 2
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Width Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  ↑/↓ indent  q quit"))
	b.WriteString("\n\n")

	b.WriteString(previewRulerStyle.Render(ruler(m.Width)))
	b.WriteString("\n")

	out := doc.Render(m.Doc, m.Indent, m.Width)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > m.Width {
			b.WriteString(line[:m.Width])
			b.WriteString(previewOverStyle.Render(line[m.Width:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	lines := strings.Count(out, "\n") + 1
	b.WriteString(previewStatusStyle.Render(
		fmt.Sprintf("width %d · indent %d · %d lines", m.Width, m.Indent, lines)))
	b.WriteString("\n")

	return b.String()
}

// ruler renders a column ruler ending with the break column marker.
func ruler(width int) string {
	var b strings.Builder
	for col := 1; col <= width; col++ {
		switch {
		case col == width:
			b.WriteByte('|')
		case col%10 == 0:
			b.WriteByte('+')
		case col%5 == 0:
			b.WriteByte('.')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
