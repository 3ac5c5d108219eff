// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogCommentTable represents the 'catalog.comment' table
type CatalogCommentTable struct {
	Table    string
	ID       string
	ReviewID string
	Text     string
	AuthorID string
	PubDate  string
}

// CatalogComment is the schema definition for catalog.comment
var CatalogComment = CatalogCommentTable{
	Table:    "catalog.comment",
	ID:       "id",
	ReviewID: "review_id",
	Text:     "text",
	AuthorID: "author_id",
	PubDate:  "pub_date",
}

func (t CatalogCommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.Text, t.AuthorID, t.PubDate}
}
