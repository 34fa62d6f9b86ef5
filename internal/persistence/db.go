// Package persistence provides the SQLite archive of periodic reports,
// ledger decisions, and engine events. This is append-only telemetry
// for external analysis; mid-game state is never saved or restored.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mkello/civitas/internal/engine"
)

// Archive wraps a SQLite connection.
type Archive struct {
	conn *sqlx.DB
}

// Open opens or creates the archive database at the given path.
func Open(path string) (*Archive, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	a := &Archive{conn: conn}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.conn.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		window_start INTEGER NOT NULL,
		stability REAL NOT NULL,
		mean_happiness REAL NOT NULL,
		trust REAL NOT NULL,
		top_kpi TEXT NOT NULL,
		bottom_kpi TEXT NOT NULL,
		counters_json TEXT NOT NULL,
		kpis_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		day INTEGER NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		choice TEXT NOT NULL,
		treasury REAL NOT NULL,
		trust REAL NOT NULL,
		priority REAL NOT NULL,
		demo_json TEXT NOT NULL,
		kpi_json TEXT NOT NULL,
		risk_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_day ON reports(day);
	CREATE INDEX IF NOT EXISTS idx_decisions_day ON decisions(day);
	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`
	_, err := a.conn.Exec(schema)
	return err
}

// SaveReport archives a periodic report with its window's decisions.
func (a *Archive) SaveReport(r engine.Report, window []*engine.Decision) error {
	tx, err := a.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	countersJSON, _ := json.Marshal(r.Counters)
	kpisJSON, _ := json.Marshal(r.KPIs)

	_, err = tx.Exec(`INSERT INTO reports
		(day, window_start, stability, mean_happiness, trust, top_kpi, bottom_kpi, counters_json, kpis_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Day, r.WindowStart, r.Stability, r.MeanHappiness, r.Trust,
		string(r.TopKPI), string(r.BottomKPI), string(countersJSON), string(kpisJSON),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	for _, d := range window {
		demoJSON, _ := json.Marshal(d.Demo)
		kpiJSON, _ := json.Marshal(d.KPI)
		riskJSON, _ := json.Marshal(d.RiskFlags)

		_, err := tx.Exec(`INSERT OR REPLACE INTO decisions
			(id, day, title, category, choice, treasury, trust, priority, demo_json, kpi_json, risk_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Day, d.Title, d.Category, d.Choice,
			d.Treasury, d.Trust, d.Priority,
			string(demoJSON), string(kpiJSON), string(riskJSON),
		)
		if err != nil {
			return fmt.Errorf("insert decision %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("report archived", "day", r.Day, "decisions", len(window))
	return nil
}

// SaveEvents appends engine events to the archive.
func (a *Archive) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := a.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (day, category, description) VALUES (?, ?, ?)",
			e.Day, e.Category, e.Description,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentEvents returns the most recent archived events.
func (a *Archive) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := a.conn.Select(&events,
		"SELECT day, category, description FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
