package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typeset-go/typeset/pkg/pipeline"
)

// newFmtCmd creates the fmt command: parse, compile, and render a
// layout source at a target width.
func newFmtCmd(configPath *string) *cobra.Command {
	var (
		width   int
		indent  int
		depth   int
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Format a layout source at a target width",
		Long: `Format parses a layout expression, compiles it, and renders it at
the requested buffer width. With no file argument (or "-"), the source
is read from stdin.

Examples:

  # Format a file at the default width
  typeset fmt layout.ts

  # Narrow output from stdin
  echo '"foo" + grp ("bar" & "baz")' | typeset fmt --width 7`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, &cfg, width, indent, depth)
			if noCache {
				cfg.Cache.Backend = backendNone
			}

			source, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			c, keyer, err := newCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(c, keyer, logger)
			defer runner.Close()

			prog := newProgress(logger)
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Source:      source,
				BufferWidth: cfg.Width,
				IndentWidth: cfg.Indent,
				MaxDepth:    cfg.Depth,
				Refresh:     refresh,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Formatted %d document lines", result.Stats.LineCount))

			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "buffer width in columns")
	cmd.Flags().IntVarP(&indent, "indent", "i", 0, "columns per nest level")
	cmd.Flags().IntVar(&depth, "depth", 0, "compiler recursion budget")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache reads")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// applyFlagOverrides copies explicitly set flags over the config file
// values, so precedence is flags > file > defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *Config, width, indent, depth int) {
	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("indent") {
		cfg.Indent = indent
	}
	if cmd.Flags().Changed("depth") {
		cfg.Depth = depth
	}
}
