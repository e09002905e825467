package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bizfinder/internal/app"
	"bizfinder/internal/service"
	"bizfinder/internal/storage"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query...>",
		Short: "Answer a query with listings or a short explanation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			resp, err := a.Chat.Chat(ctx, service.ChatRequest{Query: joinArgs(args)})
			if err != nil {
				return err
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "browse <query...>",
		Short: "Show how a query is interpreted and which result pages exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			out := cmd.OutOrStdout()
			res, err := a.Browse.Search(ctx, joinArgs(args))
			if err != nil {
				return err
			}
			printInterpretation(out, res.Interpretation)
			printPages(out, res.Pages)

			if page == 0 {
				return nil
			}
			if page < 0 || page > len(res.Pages) {
				return fmt.Errorf("page %d out of range (1-%d)", page, len(res.Pages))
			}
			listings, err := a.Browse.Page(ctx, res.Pages[page-1], res.Interpretation.City)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			headingColor.Fprintf(out, "Page %d: %s\n", page, res.Pages[page-1].Value)
			printListings(out, listings.Listings)
			mutedColor.Fprintln(out, listings.Query)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 0, "print the listings of page N")
	return cmd
}

func newVocabCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Build the vocabulary index and print its sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()
			printStats(cmd.OutOrStdout(), a.Index.Stats())
			return nil
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Load listings from a CSV file into the store",
		Long: `Load listings from a CSV file. The header row names table columns
(name, address, phone_number, website, city, state, area, category,
subcategory, reviews_average, reviews_count); other columns are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() {
				_ = f.Close()
			}()

			db, repo, err := app.OpenStore(opts.cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			n, err := storage.ImportCSV(cmd.Context(), repo, f)
			if err != nil {
				return fmt.Errorf("imported %d rows before failing: %w", n, err)
			}
			headingColor.Fprintf(cmd.OutOrStdout(), "Imported %d listings into %s\n", n, opts.cfg.ListingsTable)
			return nil
		},
	}
}
