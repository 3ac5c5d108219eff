// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/yamdb", toPgx5DSN("postgres://u:p@db:5432/yamdb"))
	assert.Equal(t, "pgx5://u@db/yamdb?sslmode=disable", toPgx5DSN("postgresql://u@db/yamdb?sslmode=disable"))
	assert.Equal(t, "pgx5://db/yamdb", toPgx5DSN("pgx5://db/yamdb"))
}
