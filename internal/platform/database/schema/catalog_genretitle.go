// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogGenreTitleTable represents the 'catalog.genre_title' junction table
type CatalogGenreTitleTable struct {
	Table   string
	ID      string
	TitleID string
	GenreID string
}

// CatalogGenreTitle is the schema definition for catalog.genre_title
var CatalogGenreTitle = CatalogGenreTitleTable{
	Table:   "catalog.genre_title",
	ID:      "id",
	TitleID: "title_id",
	GenreID: "genre_id",
}

func (t CatalogGenreTitleTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.GenreID}
}
