package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"EmaAnalyzer/internal/exporter"
)

// PostgresSink stores the export tables in a PostgreSQL warehouse.
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink connects to PostgreSQL and verifies the connection.
func NewPostgresSink(dsn string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Println("[INFO] postgres sink connected")
	return &PostgresSink{db: db}, nil
}

func (p *PostgresSink) Name() string { return "postgres" }

// Replace drops, recreates and refills every table in one transaction.
func (p *PostgresSink) Replace(ctx context.Context, tables []exporter.Table) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if err := replaceTable(ctx, tx, t, postgresColumnType, placeholderDollar); err != nil {
			return fmt.Errorf("replace %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}
	return nil
}

func (p *PostgresSink) Close() error {
	log.Println("[INFO] closing postgres sink")
	return p.db.Close()
}

func postgresColumnType(t exporter.ColumnType) string {
	switch t {
	case exporter.TypeDate:
		return "DATE"
	case exporter.TypeInteger:
		return "BIGINT"
	case exporter.TypeReal:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

func placeholderDollar(i int) string { return fmt.Sprintf("$%d", i) }
