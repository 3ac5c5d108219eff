// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresWriter is the pgx-backed [RowWriter].
type PostgresWriter struct {
	pool *pgxpool.Pool
}

// NewPostgresWriter creates a [PostgresWriter].
func NewPostgresWriter(pool *pgxpool.Pool) *PostgresWriter {
	return &PostgresWriter{pool: pool}
}

// Count implements [RowWriter].
func (writer *PostgresWriter) Count(context context.Context, table Table) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table.Target)
	if err := writer.pool.QueryRow(context, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, table.Name)
	}
	return count, nil
}

// Write implements [RowWriter].
func (writer *PostgresWriter) Write(context context.Context, table Table, columns []string, values []any, overwrite bool) error {
	query, args, err := insertQuery(table, columns, values, overwrite)
	if err != nil {
		return err
	}
	if _, err := writer.pool.Exec(context, query, args...); err != nil {
		return dberr.Wrap(err, table.Name)
	}
	return nil
}

// Resync implements [RowWriter].
func (writer *PostgresWriter) Resync(context context.Context, table Table) error {
	query := fmt.Sprintf(`
		SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL)
		FROM %[1]s`, table.Target)

	if _, err := writer.pool.Exec(context, query); err != nil {
		return dberr.Wrap(err, table.Name)
	}
	return nil
}

func insertQuery(table Table, columns []string, values []any, overwrite bool) (string, []any, error) {
	builder := psql.Insert(table.Target).Columns(columns...).Values(values...)

	if overwrite {
		assignments := make([]string, 0, len(columns))
		for _, column := range columns {
			if column == "id" {
				continue
			}
			assignments = append(assignments, fmt.Sprintf("%[1]s = EXCLUDED.%[1]s", column))
		}

		suffix := "ON CONFLICT (id) DO NOTHING"
		if len(assignments) > 0 {
			suffix = "ON CONFLICT (id) DO UPDATE SET " + strings.Join(assignments, ", ")
		}
		builder = builder.Suffix(suffix)
	}

	return builder.ToSql()
}
