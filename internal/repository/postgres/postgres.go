package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthdash/backend/internal/domain"
)

// Raw table names read by PostgresSource
const (
	RecordsTable      = "health_metric_raw"
	DemographicsTable = "demographic_raw"
)

// PostgresSource implements domain.RawSource over the raw survey tables
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a new PostgreSQL source
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Connect opens a small pool suited to a one-shot batch read. The pool
// dials lazily; call Health to verify the database is reachable.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse connection string: %w", err)
	}
	cfg.MaxConns = 2
	cfg.MinConns = 0
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}
	return pool, nil
}

// Name identifies the source in logs
func (r *PostgresSource) Name() string {
	return "postgres:" + RecordsTable + "," + DemographicsTable
}

// LoadRecords reads the state metric table in insertion order.
// Every column is read as text so that validation sees NULLs and
// malformed numbers exactly as file sources do.
func (r *PostgresSource) LoadRecords(ctx context.Context) ([]domain.RawRow, error) {
	query := `
		SELECT id, state_name, state_code, metric,
			   year::text, value::text, population::text
		FROM ` + RecordsTable + `
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query raw records: %w", err)
	}
	defer rows.Close()

	var results []domain.RawRow
	for rows.Next() {
		var (
			id                      int64
			name, code, metric      *string
			year, value, population *string
		)
		if err := rows.Scan(&id, &name, &code, &metric, &year, &value, &population); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan raw record row: %w", err)
		}
		results = append(results, domain.RawRow{
			Ref: fmt.Sprintf("%s#%d", RecordsTable, id),
			Fields: fields(map[string]*string{
				domain.ColStateName:  name,
				domain.ColStateCode:  code,
				domain.ColMetric:     metric,
				domain.ColYear:       year,
				domain.ColValue:      value,
				domain.ColPopulation: population,
			}),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read raw records: %w", err)
	}

	return results, nil
}

// LoadDemographics reads the demographic table in insertion order
func (r *PostgresSource) LoadDemographics(ctx context.Context) ([]domain.RawRow, error) {
	query := `
		SELECT id, category, label, metric, value::text
		FROM ` + DemographicsTable + `
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query demographics: %w", err)
	}
	defer rows.Close()

	var results []domain.RawRow
	for rows.Next() {
		var (
			id                             int64
			category, label, metric, value *string
		)
		if err := rows.Scan(&id, &category, &label, &metric, &value); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan demographic row: %w", err)
		}
		results = append(results, domain.RawRow{
			Ref: fmt.Sprintf("%s#%d", DemographicsTable, id),
			Fields: fields(map[string]*string{
				domain.ColCategory: category,
				domain.ColLabel:    label,
				domain.ColMetric:   metric,
				domain.ColValue:    value,
			}),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read demographics: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresSource) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// fields drops NULL columns so they read as missing
func fields(cols map[string]*string) map[string]string {
	out := make(map[string]string, len(cols))
	for k, v := range cols {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// Schema is the DDL of the raw tables read by PostgresSource
const Schema = `
	CREATE TABLE IF NOT EXISTS ` + RecordsTable + ` (
		id SERIAL PRIMARY KEY,
		state_name VARCHAR(64),
		state_code VARCHAR(8),
		metric VARCHAR(32),
		year INTEGER,
		value NUMERIC(5,2),
		population BIGINT
	);

	CREATE TABLE IF NOT EXISTS ` + DemographicsTable + ` (
		id SERIAL PRIMARY KEY,
		category VARCHAR(32),
		label VARCHAR(128),
		metric VARCHAR(32),
		value NUMERIC(5,2)
	);
`

// CreateSchema creates the raw tables when absent
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}
