// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// termRepository implements [Repository] for one taxonomy table.
type termRepository struct {
	pool     *pgxpool.Pool
	table    schema.TaxonomyTable
	resource string
}

// NewRepository constructs a PostgreSQL backed store for vocabulary.
func NewRepository(pool *pgxpool.Pool, vocabulary Vocabulary) Repository {
	return &termRepository{pool: pool, table: vocabulary.Table, resource: vocabulary.Resource}
}

/*
List returns a filtered window of terms and the filtered total.

Description: COUNT(*) OVER() travels with each row. When the window lies
beyond the last row no count is returned, so a second query supplies it.
*/
func (repository *termRepository) List(context context.Context, name string, limit, offset int) ([]*Term, int, error) {
	table := repository.table

	where := sq.And{}
	if name != "" {
		where = append(where, sq.Expr(fmt.Sprintf("lower(%s) = lower(?)", table.Name), name))
	}

	query, args, err := psql.
		Select(table.ID, table.Name, table.Slug, "COUNT(*) OVER() AS total_count").
		From(table.Table).
		Where(where).
		OrderBy(table.Name).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("taxonomy: build list: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}
	defer rows.Close()

	terms := make([]*Term, 0, limit)
	total := 0
	for rows.Next() {
		term := &Term{}
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug, &total); err != nil {
			return nil, 0, dberr.Wrap(err, repository.resource)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}

	if len(terms) == 0 && offset > 0 {
		countQuery, countArgs, err := psql.Select("COUNT(*)").From(table.Table).Where(where).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("taxonomy: build count: %w", err)
		}
		if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, repository.resource)
		}
	}

	return terms, total, nil
}

// FindBySlugs implements [Repository].
func (repository *termRepository) FindBySlugs(context context.Context, slugs []string) ([]*Term, error) {
	table := repository.table
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		table.ID, table.Name, table.Slug, table.Table, table.Slug)

	rows, err := repository.pool.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource)
	}

	terms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Term, error) {
		term := &Term{}
		err := row.Scan(&term.ID, &term.Name, &term.Slug)
		return term, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource)
	}
	return terms, nil
}

// Taken implements [Repository].
func (repository *termRepository) Taken(context context.Context, name, slug string) (bool, bool, error) {
	table := repository.table
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %s WHERE %s = $1),
			EXISTS (SELECT 1 FROM %s WHERE %s = $2)`,
		table.Table, table.Name,
		table.Table, table.Slug,
	)

	var nameTaken, slugTaken bool
	if err := repository.pool.QueryRow(context, query, name, slug).Scan(&nameTaken, &slugTaken); err != nil {
		return false, false, dberr.Wrap(err, repository.resource)
	}
	return nameTaken, slugTaken, nil
}

// Create implements [Repository].
func (repository *termRepository) Create(context context.Context, term *Term) error {
	table := repository.table
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID)

	err := repository.pool.QueryRow(context, query, term.Name, term.Slug).Scan(&term.ID)
	return dberr.Wrap(err, repository.resource)
}

// DeleteBySlug implements [Repository].
func (repository *termRepository) DeleteBySlug(context context.Context, slug string) error {
	table := repository.table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	tag, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, repository.resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, repository.resource)
	}
	return nil
}
