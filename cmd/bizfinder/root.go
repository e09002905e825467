package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bizfinder/internal/app"
	"bizfinder/internal/config"
)

type rootOptions struct {
	verbose bool
	noColor bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bizfinder",
		Short: "Find local businesses with natural-language queries",
		Long: `bizfinder interprets a free-text query, corrects spelling, detects the city,
classifies the business category and either lists the best-rated matching
businesses or explains the term in plain words.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg

			// Logs go to stderr so command output stays clean; warnings only unless verbose.
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newAskCmd(opts),
		newBrowseCmd(opts),
		newVocabCmd(opts),
		newImportCmd(opts),
	)
	return cmd
}

// openApp builds the full application for commands that answer queries.
// Building the vocabulary embeds every label, so a spinner runs meanwhile.
func (o *rootOptions) openApp(cmd *cobra.Command) (*app.App, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Loading vocabulary..."
	s.Writer = cmd.ErrOrStderr()
	s.Start()
	defer s.Stop()

	return app.New(cmd.Context(), o.cfg)
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
