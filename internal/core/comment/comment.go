// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages the discussion attached to a review.
package comment

import "time"

// Comment is a reply to a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	Text     string    `json:"text"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is a submitted comment.
type Input struct {
	Text *string `json:"text"`
}

const FieldText = "text"
