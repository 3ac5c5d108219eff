// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

const resourceUser = "User"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// selectColumns lists the columns scanned by [scanUser], in order.
var selectColumns = []string{
	schema.UserAccount.ID,
	schema.UserAccount.Username,
	schema.UserAccount.Email,
	schema.UserAccount.FirstName,
	schema.UserAccount.LastName,
	schema.UserAccount.Bio,
	schema.UserAccount.Role,
	schema.UserAccount.IsSuperuser,
	schema.UserAccount.TokenVersion,
	schema.UserAccount.DateJoined,
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.TokenVersion,
		&user.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (repository *PostgresUserRepository) findBy(context context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(selectColumns, ", "), schema.UserAccount.Table, column)

	user, err := scanUser(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	return repository.findBy(context, schema.UserAccount.ID, id)
}

// FindByUsername implements [UserRepository].
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Username, username)
}

// FindByEmail implements [UserRepository].
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Email, email)
}

/*
Create persists a new account into users.account.

Description: The role defaults to "user" when empty. ID, DateJoined and
TokenVersion are read back from the inserted row.
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	if user.Role == "" {
		user.Role = "user"
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.Bio, schema.UserAccount.Role, schema.UserAccount.IsSuperuser,
		schema.UserAccount.ID, schema.UserAccount.TokenVersion, schema.UserAccount.DateJoined,
	)

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsSuperuser,
	).Scan(&user.ID, &user.TokenVersion, &user.DateJoined)

	return dberr.Wrap(err, resourceUser)
}

// Update implements [UserRepository].
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	account := schema.UserAccount

	// Right-hand column references read the row before the update
	query := fmt.Sprintf(`
		UPDATE %[1]s SET
			%[2]s = $2, %[3]s = $3, %[4]s = $4, %[5]s = $5, %[6]s = $6, %[7]s = $7,
			%[8]s = CASE WHEN %[3]s IS DISTINCT FROM $3 THEN %[8]s + 1 ELSE %[8]s END
		WHERE %[9]s = $1
		RETURNING %[8]s`,
		account.Table,
		account.Username, account.Email, account.FirstName,
		account.LastName, account.Bio, account.Role,
		account.TokenVersion,
		account.ID,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
	).Scan(&user.TokenVersion)

	return dberr.Wrap(err, resourceUser)
}

// Delete implements [UserRepository].
func (repository *PostgresUserRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceUser)
	}
	return nil
}

/*
List returns a window of accounts ordered by username.

Description: COUNT(*) OVER() returns the filtered total alongside each row,
so one round-trip serves both the page and its metadata. An offset past the
end yields no rows, so the total is fetched separately in that case.
*/
func (repository *PostgresUserRepository) List(context context.Context, filter UserFilter, limit, offset int) ([]*User, int, error) {
	where := sq.And{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, sq.ILike{schema.UserAccount.Username: "%" + escapeLike(search) + "%"})
	}

	query, args, err := psql.
		Select(append(append([]string{}, selectColumns...), "COUNT(*) OVER() AS total_count")...).
		From(schema.UserAccount.Table).
		Where(where).
		OrderBy(schema.UserAccount.Username).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("auth: build user list: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceUser)
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	total := 0
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
			&user.Bio, &user.Role, &user.IsSuperuser, &user.TokenVersion, &user.DateJoined,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, resourceUser)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceUser)
	}

	if len(users) == 0 && offset > 0 {
		countQuery, countArgs, err := psql.Select("COUNT(*)").From(schema.UserAccount.Table).Where(where).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("auth: build user count: %w", err)
		}
		if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceUser)
		}
	}

	return users, total, nil
}

// ConsumeTokenVersion implements [UserRepository] with a compare-and-swap update.
func (repository *PostgresUserRepository) ConsumeTokenVersion(context context.Context, id, version int64) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 AND %s = $2`,
		schema.UserAccount.Table,
		schema.UserAccount.TokenVersion, schema.UserAccount.TokenVersion,
		schema.UserAccount.ID, schema.UserAccount.TokenVersion,
	)

	tag, err := repository.pool.Exec(context, query, id, version)
	if err != nil {
		return false, dberr.Wrap(err, resourceUser)
	}
	return tag.RowsAffected() == 1, nil
}

// escapeLike quotes LIKE wildcards so the search is a literal substring.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
