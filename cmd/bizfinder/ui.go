package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"bizfinder/internal/interpret"
	"bizfinder/internal/search"
	"bizfinder/internal/service"
	"bizfinder/internal/storage"
	"bizfinder/internal/vocab"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	mutedColor   = color.New(color.FgHiBlack)
	errorColor   = color.New(color.FgRed)
)

func printResponse(w io.Writer, resp service.ChatResponse) {
	switch resp := resp.(type) {
	case service.TextResponse:
		fmt.Fprintln(w, resp.Answer)
	case service.ListingsResponse:
		headingColor.Fprintf(w, "Top %s in %s\n", resp.Category, resp.City)
		printListings(w, resp.Results)
	default:
		errorColor.Fprintf(w, "unexpected response %T\n", resp)
	}
}

func printListings(w io.Writer, listings []storage.Listing) {
	if len(listings) == 0 {
		mutedColor.Fprintln(w, "No listings found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tRATING\tREVIEWS\tADDRESS\tPHONE")
	for i, l := range listings {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%d\t%s\t%s\n",
			i+1, l.Name, l.ReviewsAverage, l.ReviewsCount, l.Address, l.Phone)
	}
	_ = tw.Flush()
}

func printInterpretation(w io.Writer, res interpret.Result) {
	headingColor.Fprintln(w, "Interpretation")
	rows := [][2]string{
		{"corrected", res.CorrectedQuery},
		{"category", fmt.Sprintf("%s (%.2f)", res.Category, res.CategoryScore)},
		{"subcategory", fmt.Sprintf("%s (%.2f)", res.Subcategory, res.SubcategoryScore)},
		{"city", res.City},
		{"confidence", strconv.FormatFloat(res.CombinedScore, 'f', 2, 64)},
		{"similar", strings.Join(res.SimilarCategories, ", ")},
	}
	for _, r := range rows {
		labelColor.Fprintf(w, "  %-12s", r[0])
		fmt.Fprintln(w, r[1])
	}
}

func printPages(w io.Writer, pages []search.Page) {
	if len(pages) == 0 {
		mutedColor.Fprintln(w, "No pages with results.")
		return
	}
	headingColor.Fprintln(w, "Pages")
	for i, p := range pages {
		labelColor.Fprintf(w, "  %d. ", i+1)
		fmt.Fprintf(w, "%s (%s)\n", p.Value, p.Mode)
	}
}

func printStats(w io.Writer, s vocab.Stats) {
	headingColor.Fprintln(w, "Vocabulary")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  categories\t%d\n", s.Categories)
	fmt.Fprintf(tw, "  subcategories\t%d\n", s.Subcategories)
	fmt.Fprintf(tw, "  cities\t%d\n", s.Cities)
	fmt.Fprintf(tw, "  words\t%d\n", s.Words)
	_ = tw.Flush()
}
