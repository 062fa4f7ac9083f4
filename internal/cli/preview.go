package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/typeset-go/typeset/pkg/lang"
	"github.com/typeset-go/typeset/pkg/layout/compile"
)

// newPreviewCmd creates the preview command: an interactive terminal
// view that re-renders the compiled document as the width changes.
func newPreviewCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Interactively preview output at different widths",
		Long: `Preview compiles the source once and re-renders it live while the
arrow keys adjust the buffer width and the indent step. Useful for
finding the width at which a layout starts to break.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			source, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			l, err := lang.Parse(source)
			if err != nil {
				return err
			}
			d, err := compile.WithDepth(l, cfg.Depth)
			if err != nil {
				return err
			}

			model := NewPreviewModel(d, cfg.Width, cfg.Indent)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return nil
		},
	}

	return cmd
}
