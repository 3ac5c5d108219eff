// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import "context"

// Repository defines the data access contract for one vocabulary.
type Repository interface {

	// List returns a window of terms ordered by name. A non-empty name
	// restricts the result to the term of that name, ignoring case.
	List(context context.Context, name string, limit, offset int) ([]*Term, int, error)

	// FindBySlugs returns the terms whose slugs are listed, in no particular order.
	FindBySlugs(context context.Context, slugs []string) ([]*Term, error)

	// Taken reports which of name and slug already belong to a term.
	Taken(context context.Context, name, slug string) (nameTaken, slugTaken bool, err error)

	/*
		Create persists a term and fills in its ID.

		Returns:
		  - error: apperr CONFLICT on a concurrent insert of the same name or slug
	*/
	Create(context context.Context, term *Term) error

	// DeleteBySlug removes a term. Titles keep existing with the link cleared.
	DeleteBySlug(context context.Context, slug string) error
}
