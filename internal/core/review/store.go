// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines the data access contract for reviews.
type Repository interface {

	// List returns a page of the title's reviews, newest first, and their total.
	List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)

	// FindByID returns the review only if it belongs to titleID.
	FindByID(context context.Context, titleID, id int64) (*Review, error)

	// ExistsByAuthor reports whether authorID already reviewed titleID.
	ExistsByAuthor(context context.Context, titleID, authorID int64) (bool, error)

	/*
		Create persists a review and fills in ID and PubDate.

		Returns:
		  - error: apperr CONFLICT when a concurrent review by the same author won
	*/
	Create(context context.Context, review *Review) error

	// Update persists text and score.
	Update(context context.Context, review *Review) error

	// Delete removes a review and its comments.
	Delete(context context.Context, id int64) error
}
