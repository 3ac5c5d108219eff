// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

const resourceComment = "Comment"

// commentRepository implements [Repository] using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &commentRepository{pool: pool}
}

var selectComments = fmt.Sprintf(`
	SELECT c.%s, c.%s, c.%s, c.%s, a.%s, c.%s
	FROM %s c
	JOIN %s a ON a.%s = c.%s`,
	schema.CatalogComment.ID, schema.CatalogComment.ReviewID, schema.CatalogComment.Text,
	schema.CatalogComment.AuthorID, schema.UserAccount.Username, schema.CatalogComment.PubDate,
	schema.CatalogComment.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.CatalogComment.AuthorID,
)

func destinations(comment *Comment) []any {
	return []any{&comment.ID, &comment.ReviewID, &comment.Text, &comment.AuthorID, &comment.Author, &comment.PubDate}
}

// List implements [Repository].
func (repository *commentRepository) List(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.CatalogComment.Table, schema.CatalogComment.ReviewID)

	total := 0
	if err := repository.pool.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	if offset >= total {
		return []*Comment{}, total, nil
	}

	query := fmt.Sprintf(`%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $2 OFFSET $3`,
		selectComments,
		schema.CatalogComment.ReviewID,
		schema.CatalogComment.PubDate, schema.CatalogComment.ID,
	)

	rows, err := repository.pool.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}

	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Comment, error) {
		comment := &Comment{}
		err := row.Scan(destinations(comment)...)
		return comment, err
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}

	return comments, total, nil
}

// FindByID implements [Repository].
func (repository *commentRepository) FindByID(context context.Context, reviewID, id int64) (*Comment, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1 AND c.%s = $2`,
		selectComments, schema.CatalogComment.ID, schema.CatalogComment.ReviewID)

	comment := &Comment{}
	if err := repository.pool.QueryRow(context, query, id, reviewID).Scan(destinations(comment)...); err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

// Create implements [Repository].
func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	table := schema.CatalogComment
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		table.Table, table.ReviewID, table.Text, table.AuthorID, table.ID, table.PubDate)

	err := repository.pool.QueryRow(context, query, comment.ReviewID, comment.Text, comment.AuthorID).
		Scan(&comment.ID, &comment.PubDate)
	return dberr.Wrap(err, resourceComment)
}

// Update implements [Repository].
func (repository *commentRepository) Update(context context.Context, comment *Comment) error {
	table := schema.CatalogComment
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, table.Table, table.Text, table.ID)

	tag, err := repository.pool.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceComment)
	}
	return nil
}

// Delete implements [Repository].
func (repository *commentRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogComment.Table, schema.CatalogComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceComment)
	}
	return nil
}
