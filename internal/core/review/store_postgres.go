// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

const resourceReview = "Review"

// reviewRepository implements [Repository] using pgx.
type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed review store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &reviewRepository{pool: pool}
}

// selectReviews is the read projection with the author's username joined in.
var selectReviews = fmt.Sprintf(`
	SELECT r.%s, r.%s, r.%s, r.%s, a.%s, r.%s, r.%s
	FROM %s r
	JOIN %s a ON a.%s = r.%s`,
	schema.CatalogReview.ID, schema.CatalogReview.TitleID, schema.CatalogReview.Text,
	schema.CatalogReview.AuthorID, schema.UserAccount.Username,
	schema.CatalogReview.Score, schema.CatalogReview.PubDate,
	schema.CatalogReview.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.CatalogReview.AuthorID,
)

func destinations(review *Review, extra ...any) []any {
	return append([]any{
		&review.ID, &review.TitleID, &review.Text, &review.AuthorID,
		&review.Author, &review.Score, &review.PubDate,
	}, extra...)
}

/*
List returns a page of reviews for a title.

Description: The total is counted separately so that a page beyond the end
still reports it; the caller turns that case into NOT_FOUND.
*/
func (repository *reviewRepository) List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.CatalogReview.Table, schema.CatalogReview.TitleID)

	total := 0
	if err := repository.pool.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}
	if total == 0 || offset >= total {
		return []*Review{}, total, nil
	}

	query := fmt.Sprintf(`%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT $2 OFFSET $3`,
		selectReviews,
		schema.CatalogReview.TitleID,
		schema.CatalogReview.PubDate, schema.CatalogReview.ID,
	)

	rows, err := repository.pool.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}

	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Review, error) {
		review := &Review{}
		err := row.Scan(destinations(review)...)
		return review, err
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}

	return reviews, total, nil
}

// FindByID implements [Repository].
func (repository *reviewRepository) FindByID(context context.Context, titleID, id int64) (*Review, error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1 AND r.%s = $2`,
		selectReviews, schema.CatalogReview.ID, schema.CatalogReview.TitleID)

	review := &Review{}
	if err := repository.pool.QueryRow(context, query, id, titleID).Scan(destinations(review)...); err != nil {
		return nil, dberr.Wrap(err, resourceReview)
	}
	return review, nil
}

// ExistsByAuthor implements [Repository].
func (repository *reviewRepository) ExistsByAuthor(context context.Context, titleID, authorID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CatalogReview.Table, schema.CatalogReview.TitleID, schema.CatalogReview.AuthorID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceReview)
	}
	return exists, nil
}

// Create implements [Repository].
func (repository *reviewRepository) Create(context context.Context, review *Review) error {
	table := schema.CatalogReview
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		table.Table, table.TitleID, table.Text, table.AuthorID, table.Score, table.ID, table.PubDate)

	err := repository.pool.QueryRow(context, query,
		review.TitleID, review.Text, review.AuthorID, review.Score,
	).Scan(&review.ID, &review.PubDate)

	return dberr.Wrap(err, resourceReview)
}

// Update implements [Repository].
func (repository *reviewRepository) Update(context context.Context, review *Review) error {
	table := schema.CatalogReview
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		table.Table, table.Text, table.Score, table.ID)

	tag, err := repository.pool.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceReview)
	}
	return nil
}

// Delete implements [Repository].
func (repository *reviewRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogReview.Table, schema.CatalogReview.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceReview)
	}
	return nil
}
