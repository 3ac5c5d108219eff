// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package taxonomy manages the flat vocabularies titles are classified by.

Categories and genres share one shape (name and slug), one storage layout
and one set of endpoints, so a single [Service] is parameterized by a
[Vocabulary].
*/
package taxonomy

import (
	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
)

// # Domain Entities

// Term is a single category or genre.
type Term struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Vocabulary binds a term kind to its table.
type Vocabulary struct {
	Kind     access.Kind
	Resource string
	Table    schema.TaxonomyTable
}

var (
	Categories = Vocabulary{Kind: access.KindCategory, Resource: "Category", Table: schema.CatalogCategory}
	Genres     = Vocabulary{Kind: access.KindGenre, Resource: "Genre", Table: schema.CatalogGenre}
)

// # Field Constraints

const (
	MaxNameLen = 256
	MaxSlugLen = 50

	FieldName = "name"
	FieldSlug = "slug"
)

// CreateInput is a new term. An empty slug is derived from the name.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
