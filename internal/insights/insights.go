// Package insights computes SQL projections over the current session's
// interaction log using an in-memory DuckDB database. Nothing is written to
// disk; the database lives and dies with the process.
package insights

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/strrl/stance/internal/history"
)

var (
	dbInstance *sql.DB
	dbOnce     sync.Once
	dbErr      error
)

func getDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = initializeDuckDB()
	})
	return dbInstance, dbErr
}

func initializeDuckDB() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

// PersonaRow is the per-persona aggregate.
type PersonaRow struct {
	Persona       string
	Count         int
	AvgConfidence float64
}

// TierRow is the per-resolution-tier aggregate.
type TierRow struct {
	Tier  string
	Count int
}

// LatencySummary holds latency quantiles in milliseconds.
type LatencySummary struct {
	P50 float64
	P95 float64
	Max float64
}

// Summary is the full analytics report over one session.
type Summary struct {
	TotalRequests int
	SuccessRate   float64
	Personas      []PersonaRow
	Tiers         []TierRow
	Latency       LatencySummary
}

// Report loads the entries into a fresh interactions table and runs the
// aggregate queries. Safe to call repeatedly; each call replaces the table
// with the current log contents.
func Report(entries []history.Entry) (*Summary, error) {
	db, err := getDB()
	if err != nil {
		return nil, err
	}

	if err := loadEntries(db, entries); err != nil {
		return nil, err
	}

	summary := &Summary{TotalRequests: len(entries)}

	if err := queryPersonas(db, summary); err != nil {
		return nil, err
	}
	if err := queryTiers(db, summary); err != nil {
		return nil, err
	}
	if err := queryLatency(db, summary); err != nil {
		return nil, err
	}
	if err := querySuccessRate(db, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

func loadEntries(db *sql.DB, entries []history.Entry) error {
	if _, err := db.Exec(`CREATE OR REPLACE TABLE interactions (
		id VARCHAR,
		ts TIMESTAMP,
		query VARCHAR,
		persona VARCHAR,
		behavior VARCHAR,
		confidence DOUBLE,
		latency_ms DOUBLE,
		success BOOLEAN,
		tier VARCHAR
	)`); err != nil {
		return fmt.Errorf("failed to create interactions table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO interactions VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		latencyMs := float64(e.Latency.Microseconds()) / 1000.0
		if _, err := stmt.Exec(e.ID, e.Timestamp, e.Query, string(e.Persona), string(e.Behavior),
			e.Confidence, latencyMs, e.Success, string(e.Tier)); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

func queryPersonas(db *sql.DB, summary *Summary) error {
	rows, err := db.Query(`SELECT persona, count(*), avg(confidence)
		FROM interactions GROUP BY persona ORDER BY count(*) DESC, persona`)
	if err != nil {
		return fmt.Errorf("persona query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row PersonaRow
		if err := rows.Scan(&row.Persona, &row.Count, &row.AvgConfidence); err != nil {
			return fmt.Errorf("failed to scan persona row: %w", err)
		}
		summary.Personas = append(summary.Personas, row)
	}
	return rows.Err()
}

func queryTiers(db *sql.DB, summary *Summary) error {
	rows, err := db.Query(`SELECT tier, count(*)
		FROM interactions GROUP BY tier ORDER BY count(*) DESC, tier`)
	if err != nil {
		return fmt.Errorf("tier query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row TierRow
		if err := rows.Scan(&row.Tier, &row.Count); err != nil {
			return fmt.Errorf("failed to scan tier row: %w", err)
		}
		summary.Tiers = append(summary.Tiers, row)
	}
	return rows.Err()
}

func queryLatency(db *sql.DB, summary *Summary) error {
	row := db.QueryRow(`SELECT
		coalesce(quantile_cont(latency_ms, 0.5), 0),
		coalesce(quantile_cont(latency_ms, 0.95), 0),
		coalesce(max(latency_ms), 0)
		FROM interactions`)
	return row.Scan(&summary.Latency.P50, &summary.Latency.P95, &summary.Latency.Max)
}

func querySuccessRate(db *sql.DB, summary *Summary) error {
	row := db.QueryRow(`SELECT coalesce(avg(CASE WHEN success THEN 1.0 ELSE 0.0 END), 0)
		FROM interactions`)
	return row.Scan(&summary.SuccessRate)
}
