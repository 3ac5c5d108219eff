// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

const resourceTitle = "Title"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// # PostgreSQL Repository

// titleRepository implements [Repository] using pgx and squirrel.
type titleRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed title store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &titleRepository{pool: pool}
}

// # Query Building

/*
selectTitles builds the shared read query.

Description: The rating and the genre list are correlated subqueries, so a
title without reviews or genres still yields exactly one row. The category
is a LEFT JOIN because the link is nullable.
*/
func selectTitles() sq.SelectBuilder {
	title, category := schema.CatalogTitle, schema.CatalogCategory
	genre, link, review := schema.CatalogGenre, schema.CatalogGenreTitle, schema.CatalogReview

	return psql.
		Select(
			"t."+title.ID,
			"t."+title.Name,
			"t."+title.Year,
			"t."+title.Description,
			"t."+title.CategoryID,
			fmt.Sprintf("(SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s) AS rating",
				review.Score, review.Table, review.TitleID, title.ID),
			"c."+category.Name,
			"c."+category.Slug,
			fmt.Sprintf(`COALESCE((
				SELECT json_agg(json_build_object('name', g.%s, 'slug', g.%s) ORDER BY g.%s)
				FROM %s gt
				JOIN %s g ON g.%s = gt.%s
				WHERE gt.%s = t.%s
			), '[]') AS genres`,
				genre.Name, genre.Slug, genre.Name,
				link.Table,
				genre.Table, genre.ID, link.GenreID,
				link.TitleID, title.ID),
		).
		From(title.Table + " t").
		LeftJoin(fmt.Sprintf("%s c ON c.%s = t.%s", category.Table, category.ID, title.CategoryID))
}

// filterTitles translates the filter into ANDed conditions.
func filterTitles(filter Filter) sq.And {
	title, category := schema.CatalogTitle, schema.CatalogCategory
	genre, link := schema.CatalogGenre, schema.CatalogGenreTitle

	where := sq.And{}
	if filter.Category != "" {
		where = append(where, sq.Eq{"c." + category.Slug: filter.Category})
	}
	if filter.Genre != "" {
		where = append(where, sq.Expr(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s gt JOIN %s g ON g.%s = gt.%s WHERE gt.%s = t.%s AND g.%s = ?)",
			link.Table, genre.Table, genre.ID, link.GenreID, link.TitleID, title.ID, genre.Slug,
		), filter.Genre))
	}
	if filter.Name != "" {
		where = append(where, sq.Eq{"t." + title.Name: filter.Name})
	}
	if filter.Year != nil {
		where = append(where, sq.Eq{"t." + title.Year: *filter.Year})
	}
	return where
}

// listQuery returns the SQL and arguments for one window of filtered titles.
func listQuery(filter Filter, limit, offset int) (string, []any, error) {
	return selectTitles().
		Column("COUNT(*) OVER() AS total_count").
		Where(filterTitles(filter)).
		OrderBy("t."+schema.CatalogTitle.Name, "t."+schema.CatalogTitle.ID).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

// scanTitle reads one row of [selectTitles], plus any trailing destinations.
func scanTitle(row pgx.Row, extra ...any) (*Title, error) {
	var (
		title         Title
		categoryName  *string
		categorySlug  *string
		genresPayload []byte
	)

	destinations := append([]any{
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.categoryID,
		&title.Rating,
		&categoryName,
		&categorySlug,
		&genresPayload,
	}, extra...)
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}

	if categorySlug != nil {
		title.Category = &taxonomy.Term{Name: *categoryName, Slug: *categorySlug}
	}

	title.Genres = []*taxonomy.Term{}
	if err := json.Unmarshal(genresPayload, &title.Genres); err != nil {
		return nil, fmt.Errorf("title: decode genres: %w", err)
	}

	return &title, nil
}

// # Reads

// List implements [Repository].
func (repository *titleRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	query, args, err := listQuery(filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("title: build list: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}
	defer rows.Close()

	titles := make([]*Title, 0, limit)
	total := 0
	for rows.Next() {
		title, err := scanTitle(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceTitle)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}

	// An offset past the end returns no rows to carry the window count
	if len(titles) == 0 && offset > 0 {
		countQuery, countArgs, err := psql.Select("COUNT(*)").
			From(schema.CatalogTitle.Table + " t").
			LeftJoin(fmt.Sprintf("%s c ON c.%s = t.%s", schema.CatalogCategory.Table, schema.CatalogCategory.ID, schema.CatalogTitle.CategoryID)).
			Where(filterTitles(filter)).
			ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("title: build count: %w", err)
		}
		if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceTitle)
		}
	}

	return titles, total, nil
}

// FindByID implements [Repository].
func (repository *titleRepository) FindByID(context context.Context, id int64) (*Title, error) {
	query, args, err := selectTitles().Where(sq.Eq{"t." + schema.CatalogTitle.ID: id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("title: build find: %w", err)
	}

	title, err := scanTitle(repository.pool.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceTitle)
	}
	return title, nil
}

// Exists implements [Repository].
func (repository *titleRepository) Exists(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceTitle)
	}
	return exists, nil
}

// NameTaken implements [Repository].
func (repository *titleRepository) NameTaken(context context.Context, name string, selfID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`,
		schema.CatalogTitle.Table, schema.CatalogTitle.Name, schema.CatalogTitle.ID)

	var taken bool
	if err := repository.pool.QueryRow(context, query, name, selfID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, resourceTitle)
	}
	return taken, nil
}

// # Writes

// Create implements [Repository].
func (repository *titleRepository) Create(context context.Context, record *Record) error {
	title := schema.CatalogTitle
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		title.Table, title.Name, title.Year, title.Description, title.CategoryID, title.ID)

	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		if err := transaction.QueryRow(context, query,
			record.Name, record.Year, record.Description, record.CategoryID,
		).Scan(&record.ID); err != nil {
			return err
		}
		return replaceGenres(context, transaction, record.ID, record.GenreIDs)
	})
	return dberr.Wrap(err, resourceTitle)
}

// Update implements [Repository].
func (repository *titleRepository) Update(context context.Context, record *Record) error {
	title := schema.CatalogTitle
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		title.Table, title.Name, title.Year, title.Description, title.CategoryID, title.ID)

	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		tag, err := transaction.Exec(context, query,
			record.ID, record.Name, record.Year, record.Description, record.CategoryID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if record.GenreIDs == nil {
			return nil
		}
		return replaceGenres(context, transaction, record.ID, record.GenreIDs)
	})
	return dberr.Wrap(err, resourceTitle)
}

// replaceGenres swaps the genre links of titleID for genreIDs.
func replaceGenres(context context.Context, transaction pgx.Tx, titleID int64, genreIDs []int64) error {
	link := schema.CatalogGenreTitle

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, link.Table, link.TitleID)
	if _, err := transaction.Exec(context, deleteQuery, titleID); err != nil {
		return err
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[])`,
		link.Table, link.TitleID, link.GenreID)
	_, err := transaction.Exec(context, insertQuery, titleID, genreIDs)
	return err
}

// Delete implements [Repository].
func (repository *titleRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceTitle)
	}
	return nil
}
