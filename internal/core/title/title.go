// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the works that are reviewed.

A title is read with its category and genres expanded and its rating derived
from the scores of its reviews. It is written with the category and genres
named by slug.
*/
package title

import "github.com/taibuivan/yamdb/internal/core/taxonomy"

// # Domain Entities

// Title is the read representation of a work.
type Title struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description *string          `json:"description"`
	Genres      []*taxonomy.Term `json:"genre"`
	Category    *taxonomy.Term   `json:"category"`

	categoryID *int64
}

// Record is the write representation persisted to catalog.title.
type Record struct {
	ID          int64
	Name        string
	Year        int
	Description *string
	CategoryID  *int64

	// GenreIDs replaces the genre links. Nil leaves them untouched on update.
	GenreIDs []int64
}

// Filter narrows a title listing. Every set field must match.
type Filter struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}

// WriteInput is a submitted title. On create and replace every field except
// description is required; on a partial update nil fields are kept.
type WriteInput struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// # Field Constraints

const (
	MaxNameLen = 256

	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldCategory    = "category"
)
