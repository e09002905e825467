package storage

import (
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"time"

	_ "github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	// DriverSQLite selects the embedded SQLite store.
	DriverSQLite = "sqlite3"
	// DriverPostgres selects a PostgreSQL store through lib/pq.
	DriverPostgres = "postgres"

	// DefaultTable is the table name used by Google Maps listing exports.
	DefaultTable = "google_maps_listings"

	// sqliteDriverName is the SQLite driver with the LN function registered.
	sqliteDriverName = "sqlite3_bizfinder"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// LN is not available in every SQLite build; the ranking query needs it.
			return conn.RegisterFunc("ln", lnFunc, true)
		},
	})
}

func lnFunc(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log(x)
}

// ValidTableName reports whether name can be used as an unquoted SQL identifier.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

// Open opens a database connection for the given driver and DSN, applies
// connection pool settings and verifies the connection.
func Open(driver, dsn string) (*sql.DB, error) {
	var driverName string
	switch driver {
	case DriverSQLite, "":
		driverName = sqliteDriverName
	case DriverPostgres:
		driverName = DriverPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the listings table and its lookup indexes if missing.
// The DDL is valid for both SQLite and PostgreSQL. It is idempotent.
func Migrate(db *sql.DB, table string) error {
	if !ValidTableName(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	schema := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			name TEXT NOT NULL,
			address TEXT,
			phone_number TEXT,
			website TEXT,
			city TEXT,
			state TEXT,
			area TEXT,
			category TEXT,
			subcategory TEXT,
			reviews_average REAL,
			reviews_count INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_category ON %s (category);`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_subcategory ON %s (subcategory);`, table, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_city ON %s (city);`, table, table),
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
