package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_listing_store.go -package=mocks bizfinder/internal/storage ListingStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const listingColumns = "name, address, phone_number, website, city, state, area, category, subcategory, reviews_average, reviews_count, created_at"

// filterColumns are the columns DistinctValues and QueryRanked may filter on.
var filterColumns = map[string]struct{}{
	"category":    {},
	"subcategory": {},
	"city":        {},
}

// ListingStore defines the read and load operations on the listings table.
type ListingStore interface {
	// DistinctValues returns the distinct non-empty values of column.
	DistinctValues(ctx context.Context, column string) ([]string, error)
	// QueryRanked returns listings ranked by relevance together with the SQL text executed.
	QueryRanked(ctx context.Context, q RankedQuery) ([]Listing, string, error)
	// Insert adds one listing.
	Insert(ctx context.Context, l Listing) error
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// ListingRepo provides methods for listing operations.
// It implements the ListingStore interface.
type ListingRepo struct {
	db     *sql.DB
	driver string
	table  string
}

// NewListingRepo creates a new ListingRepo for table on db.
// driver selects the placeholder style and must match the driver db was opened with.
func NewListingRepo(db *sql.DB, driver, table string) (*ListingRepo, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if driver == "" {
		driver = DriverSQLite
	}
	return &ListingRepo{db: db, driver: driver, table: table}, nil
}

// placeholder returns the n-th (1-based) bind parameter marker.
func (r *ListingRepo) placeholder(n int) string {
	if r.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// DistinctValues returns the distinct non-empty values of column in store order.
func (r *ListingRepo) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if _, ok := filterColumns[column]; !ok {
		return nil, fmt.Errorf("unsupported column %q", column)
	}

	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL AND %s <> ''", column, r.table, column, column)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		if v.Valid && v.String != "" {
			values = append(values, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", column, err)
	}

	return values, nil
}

// RankedSQL builds the ranked lookup statement and its arguments.
// Every user-supplied value is a bound parameter.
func (r *ListingRepo) RankedSQL(q RankedQuery) (string, []any, error) {
	if _, ok := filterColumns[q.Column]; !ok {
		return "", nil, fmt.Errorf("unsupported column %q", q.Column)
	}
	if q.Limit <= 0 {
		return "", nil, fmt.Errorf("limit must be greater than 0")
	}

	var b strings.Builder
	args := make([]any, 0, 3)

	fmt.Fprintf(&b, "SELECT %s,\n", listingColumns)
	b.WriteString("  (COALESCE(reviews_average, 0) * LN(COALESCE(reviews_count, 0) + 1.0)) AS score\n")
	fmt.Fprintf(&b, "FROM %s\n", r.table)

	args = append(args, q.Value)
	fmt.Fprintf(&b, "WHERE LOWER(%s) = %s", q.Column, r.placeholder(len(args)))
	if q.City != "" {
		args = append(args, q.City)
		fmt.Fprintf(&b, " AND LOWER(city) = %s", r.placeholder(len(args)))
	}

	args = append(args, q.Limit)
	fmt.Fprintf(&b, "\nORDER BY score DESC, name ASC\nLIMIT %s", r.placeholder(len(args)))

	return b.String(), args, nil
}

// QueryRanked runs the ranked lookup and returns the rows with the SQL text.
func (r *ListingRepo) QueryRanked(ctx context.Context, q RankedQuery) ([]Listing, string, error) {
	query, args, err := r.RankedSQL(q)
	if err != nil {
		return nil, "", err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, query, fmt.Errorf("failed to query listings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var listings []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, query, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, query, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return listings, query, nil
}

func scanListing(rows *sql.Rows) (Listing, error) {
	var (
		l                                                       Listing
		address, phone, website, city, state, area, cat, subcat sql.NullString
		avg, score                                              sql.NullFloat64
		count                                                   sql.NullInt64
		createdAt                                               sql.NullTime
	)

	err := rows.Scan(&l.Name, &address, &phone, &website, &city, &state, &area, &cat, &subcat, &avg, &count, &createdAt, &score)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to scan listing: %w", err)
	}

	l.Address = address.String
	l.Phone = phone.String
	l.Website = website.String
	l.City = city.String
	l.State = state.String
	l.Area = area.String
	l.Category = cat.String
	l.Subcategory = subcat.String
	l.ReviewsAverage = avg.Float64
	l.ReviewsCount = int(count.Int64)
	l.CreatedAt = createdAt.Time
	l.Score = score.Float64
	return l, nil
}

// Insert adds one listing. A zero CreatedAt is stored as the current time.
func (r *ListingRepo) Insert(ctx context.Context, l Listing) error {
	if l.Name == "" {
		return fmt.Errorf("listing name is required")
	}
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	placeholders := make([]string, 12)
	for i := range placeholders {
		placeholders[i] = r.placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.table, listingColumns, strings.Join(placeholders, ", "))

	_, err := r.db.ExecContext(ctx, query,
		l.Name, l.Address, l.Phone, l.Website, l.City, l.State, l.Area,
		l.Category, l.Subcategory, l.ReviewsAverage, l.ReviewsCount, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (r *ListingRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
