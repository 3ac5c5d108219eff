// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

/*
TestWrap verifies the SQLSTATE to HTTP status mapping.
*/
func TestWrap(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusBadRequest},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, http.StatusBadRequest},
		{"other pg", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, http.StatusInternalServerError},
		{"plain", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := apperr.As(dberr.Wrap(tc.err, "Title"))
			require.NotNil(t, appErr)
			assert.Equal(t, tc.status, appErr.HTTPStatus)
		})
	}
}

/*
TestWrap_PassThrough verifies nil and already-classified errors are returned unchanged.
*/
func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Title"))

	original := apperr.Forbidden("nope")
	assert.Same(t, original, dberr.Wrap(original, "Title"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})))
	assert.False(t, dberr.IsUniqueViolation(errors.New("x")))
}
