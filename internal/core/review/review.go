// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages the scored reviews users write about titles.

Each user may review a title once. Reviews are listed newest first and paged
by page number; their scores feed the title rating.
*/
package review

import "time"

// # Domain Entities

// Review is a user's scored opinion of a title.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	Text     string    `json:"text"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is a submitted review. The author and title come from the request.
type Input struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// # Field Constraints

const (
	MinScore = 1
	MaxScore = 10

	FieldText  = "text"
	FieldScore = "score"
)
