package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Querier is the slice of *pgxpool.Pool the Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the reference tables from Postgres. Each table has a
// serial id column that fixes row order, a disease column and the category's
// value columns in lower case.
type PostgresSource struct {
	db     Querier
	logger *slog.Logger
}

var _ Source = (*PostgresSource)(nil)

// NewPostgresSource wires a pool or any other Querier.
func NewPostgresSource(db Querier, logger *slog.Logger) *PostgresSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSource{db: db, logger: logger}
}

// Load runs one SELECT per table. NULL cells become empty strings and rows
// with a NULL disease are skipped.
func (s *PostgresSource) Load(ctx context.Context) (Dataset, error) {
	var d Dataset
	for _, schema := range schemas {
		rows, err := s.readTable(ctx, schema)
		if err != nil {
			return Dataset{}, err
		}
		*d.rows(schema.category) = rows
		s.logger.Debug("reference table loaded", "table", schema.table, "rows", len(rows))
	}
	return d, nil
}

func selectQuery(schema tableSchema) (string, []any, error) {
	cols := make([]string, 0, len(schema.columns)+1)
	cols = append(cols, strings.ToLower(schema.key))
	for _, c := range schema.columns {
		cols = append(cols, strings.ToLower(c))
	}
	return sq.Select(cols...).
		From(schema.table).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func (s *PostgresSource) readTable(ctx context.Context, schema tableSchema) ([]Row, error) {
	query, args, err := selectQuery(schema)
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", schema.table, err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", schema.table, err)
	}
	defer rows.Close()

	var out []Row
	cells := make([]*string, len(schema.columns)+1)
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		for i := range cells {
			cells[i] = nil
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", schema.table, err)
		}
		if cells[0] == nil {
			s.logger.Warn("skipping row without disease", "table", schema.table)
			continue
		}
		row := Row{Disease: *cells[0], Values: make([]string, len(schema.columns))}
		for i, c := range cells[1:] {
			if c != nil {
				row.Values[i] = *c
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", schema.table, err)
	}
	return out, nil
}
