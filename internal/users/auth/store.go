// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserFilter narrows a user listing.
type UserFilter struct {
	// Search matches usernames containing the value, case-insensitively.
	Search string
}

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - error: apperr NOT_FOUND if absent
	*/
	FindByID(context context.Context, id int64) (*User, error)

	// FindByUsername returns the account with the given username (exact match).
	FindByUsername(context context.Context, username string) (*User, error)

	// FindByEmail returns the account with the given email (exact match).
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a new account and fills in ID and DateJoined.

		Returns:
		  - error: apperr CONFLICT when a concurrent insert took the username or email
	*/
	Create(context context.Context, user *User) error

	// Update persists the profile fields and Role. TokenVersion is never
	// written back: it is incremented in place when Email changes, and the
	// new value is read into user.
	Update(context context.Context, user *User) error

	// Delete removes an account. Reviews and comments cascade.
	Delete(context context.Context, id int64) error

	// List returns one window of accounts ordered by username, plus the total count.
	List(context context.Context, filter UserFilter, limit, offset int) ([]*User, int, error)

	/*
		ConsumeTokenVersion increments token_version only if it still equals
		version. It reports false when another redemption won the race.
	*/
	ConsumeTokenVersion(context context.Context, id, version int64) (bool, error)
}

// # Volatile Data Access

// AttemptCounter tracks failed confirmation-code redemptions per username.
type AttemptCounter interface {

	// Failures returns the failures recorded in the current window.
	Failures(context context.Context, username string) (int, error)

	// RecordFailure increments the counter; the first failure opens a window.
	RecordFailure(context context.Context, username string, window time.Duration) error

	// Reset clears the counter after a successful redemption.
	Reset(context context.Context, username string) error
}
