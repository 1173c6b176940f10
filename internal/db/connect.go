package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ParseDriver maps common aliases to a Driver.
func ParseDriver(s string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "postgres", "pg", "pgx", "pgsql":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported driver: %s", s)
	}
}

// SQLName is the database/sql driver name registered for d.
func (d Driver) SQLName() string {
	if d == DriverPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Open opens a DB, tunes the pool and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = "file:eduvate.db?mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		if dsn == "" {
			dsn = "postgres://localhost:5432/eduvate?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(driver.SQLName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	tunePool(driver, db)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	if driver == DriverSQLite {
		if err := applySQLitePragmas(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := ensureSchema(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// tunePool keeps SQLite to a single writer connection.
func tunePool(driver Driver, db *sql.DB) {
	maxOpen := 20
	maxIdle := 10
	connLife := 45 * time.Minute
	idleLife := 15 * time.Minute

	if driver == DriverSQLite {
		maxOpen = 1
		maxIdle = 1
		connLife = 0
		idleLife = 0
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(connLife)
	db.SetConnMaxIdleTime(idleLife)
}

func applySQLitePragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("db: sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	schema := schemaSQLite
	if driver == DriverPostgres {
		schema = schemaPostgres
	}
	// Some drivers reject multi-statement scripts; retry one statement at a time.
	if _, err := db.ExecContext(ctx, schema); err != nil {
		for _, stmt := range strings.Split(schema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("db: schema: %w", err)
			}
		}
	}
	return nil
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  name TEXT,
  role TEXT NOT NULL DEFAULT 'student',
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS colleges (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  short_name TEXT NOT NULL,
  location TEXT NOT NULL,
  state TEXT NOT NULL,
  type TEXT NOT NULL,
  ranking INTEGER NOT NULL DEFAULT 0,
  fees REAL NOT NULL DEFAULT 0,
  avg_package REAL NOT NULL DEFAULT 0,
  highest_package REAL NOT NULL DEFAULT 0,
  placement_rate REAL NOT NULL DEFAULT 0,
  top_recruiters TEXT NOT NULL DEFAULT '[]',
  facilities TEXT NOT NULL DEFAULT '[]',
  courses TEXT NOT NULL DEFAULT '[]',
  established INTEGER NOT NULL DEFAULT 0,
  accreditation TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cutoffs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  college_id INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
  exam_type TEXT NOT NULL,
  year INTEGER NOT NULL,
  general INTEGER,
  obc INTEGER,
  sc INTEGER,
  st INTEGER,
  ews INTEGER,
  UNIQUE (college_id, exam_type, year)
);

CREATE INDEX IF NOT EXISTS idx_cutoffs_exam ON cutoffs (exam_type, college_id, year);

CREATE TABLE IF NOT EXISTS exams (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  full_name TEXT NOT NULL,
  date TEXT NOT NULL,
  result_date TEXT NOT NULL DEFAULT '',
  counselling_start TEXT NOT NULL DEFAULT '',
  counselling_end TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL,
  registration_deadline TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS scholarships (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  provider TEXT NOT NULL,
  amount REAL NOT NULL,
  eligibility TEXT NOT NULL,
  deadline TEXT NOT NULL,
  category TEXT NOT NULL,
  exam_types TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS hostels (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  location TEXT NOT NULL,
  nearby_colleges TEXT NOT NULL DEFAULT '[]',
  distance REAL NOT NULL,
  rent REAL NOT NULL,
  amenities TEXT NOT NULL DEFAULT '[]',
  gender TEXT NOT NULL,
  rating REAL NOT NULL DEFAULT 0,
  reviews INTEGER NOT NULL DEFAULT 0,
  image_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS placements (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  college_id INTEGER NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
  year INTEGER NOT NULL,
  sector TEXT NOT NULL,
  company TEXT NOT NULL,
  offers INTEGER NOT NULL DEFAULT 0,
  avg_package REAL NOT NULL DEFAULT 0,
  highest_package REAL NOT NULL DEFAULT 0
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  name TEXT,
  role TEXT NOT NULL DEFAULT 'student',
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS colleges (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  short_name TEXT NOT NULL,
  location TEXT NOT NULL,
  state TEXT NOT NULL,
  type TEXT NOT NULL,
  ranking INTEGER NOT NULL DEFAULT 0,
  fees DOUBLE PRECISION NOT NULL DEFAULT 0,
  avg_package DOUBLE PRECISION NOT NULL DEFAULT 0,
  highest_package DOUBLE PRECISION NOT NULL DEFAULT 0,
  placement_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
  top_recruiters TEXT NOT NULL DEFAULT '[]',
  facilities TEXT NOT NULL DEFAULT '[]',
  courses TEXT NOT NULL DEFAULT '[]',
  established INTEGER NOT NULL DEFAULT 0,
  accreditation TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cutoffs (
  id BIGSERIAL PRIMARY KEY,
  college_id BIGINT NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
  exam_type TEXT NOT NULL,
  year INTEGER NOT NULL,
  general BIGINT,
  obc BIGINT,
  sc BIGINT,
  st BIGINT,
  ews BIGINT,
  UNIQUE (college_id, exam_type, year)
);

CREATE INDEX IF NOT EXISTS idx_cutoffs_exam ON cutoffs (exam_type, college_id, year);

CREATE TABLE IF NOT EXISTS exams (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  full_name TEXT NOT NULL,
  date TEXT NOT NULL,
  result_date TEXT NOT NULL DEFAULT '',
  counselling_start TEXT NOT NULL DEFAULT '',
  counselling_end TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL,
  registration_deadline TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS scholarships (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  provider TEXT NOT NULL,
  amount DOUBLE PRECISION NOT NULL,
  eligibility TEXT NOT NULL,
  deadline TEXT NOT NULL,
  category TEXT NOT NULL,
  exam_types TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS hostels (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  location TEXT NOT NULL,
  nearby_colleges TEXT NOT NULL DEFAULT '[]',
  distance DOUBLE PRECISION NOT NULL,
  rent DOUBLE PRECISION NOT NULL,
  amenities TEXT NOT NULL DEFAULT '[]',
  gender TEXT NOT NULL,
  rating DOUBLE PRECISION NOT NULL DEFAULT 0,
  reviews INTEGER NOT NULL DEFAULT 0,
  image_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS placements (
  id BIGSERIAL PRIMARY KEY,
  college_id BIGINT NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
  year INTEGER NOT NULL,
  sector TEXT NOT NULL,
  company TEXT NOT NULL,
  offers INTEGER NOT NULL DEFAULT 0,
  avg_package DOUBLE PRECISION NOT NULL DEFAULT 0,
  highest_package DOUBLE PRECISION NOT NULL DEFAULT 0
);
`
