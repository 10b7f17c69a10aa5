package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"EmaAnalyzer/internal/exporter"
)

// SQLiteSink stores the export tables in a SQLite database.
type SQLiteSink struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteSink opens (or creates) the SQLite database.
func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while
	// the analyzer writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	log.Printf("[INFO] sqlite sink opened: %s", dbPath)
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Name() string { return "sqlite" }

// Replace drops, recreates and refills every table in one transaction.
func (s *SQLiteSink) Replace(ctx context.Context, tables []exporter.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if err := replaceTable(ctx, tx, t, sqliteColumnType, placeholderQuestion); err != nil {
			return fmt.Errorf("replace %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Close() error {
	log.Println("[INFO] closing sqlite sink")
	return s.db.Close()
}

func sqliteColumnType(t exporter.ColumnType) string {
	switch t {
	case exporter.TypeInteger:
		return "INTEGER"
	case exporter.TypeReal:
		return "REAL"
	default:
		// SQLite has no DATE affinity; dates are stored as ISO text.
		return "TEXT"
	}
}

func placeholderQuestion(int) string { return "?" }

// replaceTable implements the full-replace contract shared by both SQL
// sinks: drop, recreate from the declared columns, insert all rows.
func replaceTable(ctx context.Context, tx *sql.Tx, t exporter.Table, colType func(exporter.ColumnType) string, placeholder func(int) string) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", t.Name)); err != nil {
		return fmt.Errorf("drop: %w", err)
	}

	defs := make([]string, len(t.Columns))
	names := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = fmt.Sprintf("%s %s", c.Name, colType(c.Type))
		names[i] = c.Name
		marks[i] = placeholder(i + 1)
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", t.Name, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if len(t.Rows) == 0 {
		return nil
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(names, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}
	return nil
}
