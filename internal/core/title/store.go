// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// Repository defines the data access contract for titles.
type Repository interface {

	// List returns a filtered window of titles ordered by name, plus the total.
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	// FindByID returns the read representation of a title.
	FindByID(context context.Context, id int64) (*Title, error)

	// Exists reports whether a title with id exists.
	Exists(context context.Context, id int64) (bool, error)

	// NameTaken reports whether another title (not selfID) already has name.
	NameTaken(context context.Context, name string, selfID int64) (bool, error)

	/*
		Create inserts the title and its genre links in one transaction and
		fills in record.ID.

		Returns:
		  - error: apperr CONFLICT on a concurrent insert of the same name
	*/
	Create(context context.Context, record *Record) error

	// Update rewrites the title and, unless GenreIDs is nil, its genre links.
	Update(context context.Context, record *Record) error

	// Delete removes a title. Its reviews and comments cascade.
	Delete(context context.Context, id int64) error
}
