// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogReviewTable represents the 'catalog.review' table
type CatalogReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	Text     string
	AuthorID string
	Score    string
	PubDate  string
}

// CatalogReview is the schema definition for catalog.review
var CatalogReview = CatalogReviewTable{
	Table:    "catalog.review",
	ID:       "id",
	TitleID:  "title_id",
	Text:     "text",
	AuthorID: "author_id",
	Score:    "score",
	PubDate:  "pub_date",
}

func (t CatalogReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.Text, t.AuthorID, t.Score, t.PubDate}
}
