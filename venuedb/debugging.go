package venuedb

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"makanmap.sg/internal/logging"
)

// PrintSimpleSchema dumps all database objects to the standard logger.
func PrintSimpleSchema(c *Client) error { // nolint:unused
	rows, err := c.DB.Query(`
		SELECT type, name, sql
		FROM sqlite_master
		WHERE type IN ('table', 'index', 'view', 'trigger')
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY type, name
	`)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(rows,
		slog.Default().With(slog.String("component", "debugging")),
		"database_rows")

	log.Println("DATABASE SCHEMA:")
	log.Println("----------------")

	for rows.Next() {
		var objType, objName, objSQL string
		if err := rows.Scan(&objType, &objName, &objSQL); err != nil {
			return err
		}
		log.Printf("%s: %s\n", strings.ToUpper(objType), objName)
		log.Printf("%s\n\n", objSQL)
	}

	return rows.Err()
}

// DumpRow renders any row struct for verbose CLI output.
func DumpRow(row interface{}) string {
	return spew.Sdump(row)
}

// TableCounts returns per-table row counts for the venue tables.
func (c *Client) TableCounts() (map[string]int, error) {
	tables := []string{
		"stations", "sources", "malls", "listings",
		"brands", "outlets", "listing_sources", "reconcile_actions",
	}

	counts := make(map[string]int)

	for _, table := range tables {
		var query string

		// This prevents SQL injection by ensuring the query string is always a constant.
		switch table {
		case "stations":
			query = "SELECT COUNT(*) FROM stations"
		case "sources":
			query = "SELECT COUNT(*) FROM sources"
		case "malls":
			query = "SELECT COUNT(*) FROM malls"
		case "listings":
			query = "SELECT COUNT(*) FROM listings"
		case "brands":
			query = "SELECT COUNT(*) FROM brands"
		case "outlets":
			query = "SELECT COUNT(*) FROM outlets"
		case "listing_sources":
			query = "SELECT COUNT(*) FROM listing_sources"
		case "reconcile_actions":
			query = "SELECT COUNT(*) FROM reconcile_actions"
		default:
			continue
		}

		var count int
		if err := c.DB.QueryRow(query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = count
	}

	return counts, nil
}
