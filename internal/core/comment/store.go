// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the data access contract for comments.
type Repository interface {
	List(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)

	// FindByID returns the comment only if it belongs to reviewID.
	FindByID(context context.Context, reviewID, id int64) (*Comment, error)

	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, id int64) error
}
