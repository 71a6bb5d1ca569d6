// Package venuedb is the SQLite data layer for stations, sources, malls,
// curated listings and directory outlets. Queries are hand-written in the
// style of generated sqlc code so that callers get typed rows and
// context-aware methods.
package venuedb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Client owns the database handle and the typed query set.
type Client struct {
	DB      *sql.DB
	Queries *Queries
	config  Config
}

// NewClient opens (or creates) the database at cfg.DBPath and applies the
// schema. Use ":memory:" for tests.
func NewClient(cfg Config) (*Client, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Client{
		DB:      db,
		Queries: New(db),
		config:  cfg,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// DBTX matches both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Queries provides typed access to the venue tables.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
