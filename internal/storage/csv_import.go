package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Inserter adds listings to a store.
type Inserter interface {
	Insert(ctx context.Context, l Listing) error
}

// ImportCSV reads listings from r and inserts them one by one. The first row is a
// header naming table columns; unknown columns are ignored and name is required.
// It returns the number of rows inserted before any error.
func ImportCSV(ctx context.Context, store Inserter, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("csv input is empty")
		}
		return 0, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols["name"]; !ok {
		return 0, fmt.Errorf("csv header has no name column")
	}

	inserted := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return inserted, nil
		}
		if err != nil {
			return inserted, fmt.Errorf("line %d: %w", line, err)
		}

		l, err := listingFromRecord(cols, record)
		if err != nil {
			return inserted, fmt.Errorf("line %d: %w", line, err)
		}
		if err := store.Insert(ctx, l); err != nil {
			return inserted, fmt.Errorf("line %d: %w", line, err)
		}
		inserted++
	}
}

func listingFromRecord(cols map[string]int, record []string) (Listing, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	l := Listing{
		Name:        field("name"),
		Address:     field("address"),
		Phone:       field("phone_number"),
		Website:     field("website"),
		City:        field("city"),
		State:       field("state"),
		Area:        field("area"),
		Category:    field("category"),
		Subcategory: field("subcategory"),
	}
	if v := field("reviews_average"); v != "" {
		avg, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Listing{}, fmt.Errorf("invalid reviews_average %q", v)
		}
		l.ReviewsAverage = avg
	}
	if v := field("reviews_count"); v != "" {
		// exports sometimes write counts as floats ("120.0")
		count, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return Listing{}, fmt.Errorf("invalid reviews_count %q", v)
		}
		l.ReviewsCount = int(count)
	}
	return l, nil
}
