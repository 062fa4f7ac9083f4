package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/typeset-go/typeset/pkg/buildinfo"
)

// Execute runs the typeset CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (fmt,
// inspect, preview, viz, cache), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: warn level (stage timings stay quiet)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "typeset",
		Short:        "Typeset fits structured text to a width",
		Long:         `Typeset compiles layout expressions into width-independent documents and renders them at any buffer width, breaking soft seams as needed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.WarnLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default typeset.toml if present)")

	root.AddCommand(newFmtCmd(&configPath))
	root.AddCommand(newInspectCmd())
	root.AddCommand(newPreviewCmd(&configPath))
	root.AddCommand(newVizCmd())
	root.AddCommand(newCacheCmd(&configPath))
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// readSource returns the layout source from the file argument, or from
// stdin when no argument (or "-") is given.
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
