// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogTitleTable represents the 'catalog.title' table
type CatalogTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	CategoryID  string
	Description string
}

// CatalogTitle is the schema definition for catalog.title
var CatalogTitle = CatalogTitleTable{
	Table:       "catalog.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	CategoryID:  "category_id",
	Description: "description",
}

func (t CatalogTitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.CategoryID, t.Description}
}
