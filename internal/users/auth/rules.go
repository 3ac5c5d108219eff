// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// # Field Rules

// CheckUsername applies the username format rules.
func CheckUsername(validator *validate.Validator, username string) {
	validator.Required(FieldUsername, username)
	if username == "" {
		return
	}
	validator.MaxLen(FieldUsername, username, MaxUsernameLen).
		Pattern(FieldUsername, username, usernamePattern, usernamePatternMessage).
		NotEqualFold(FieldUsername, username, ReservedUsername)
}

// CheckEmail applies the email format rules.
func CheckEmail(validator *validate.Validator, email string) {
	validator.Required(FieldEmail, email)
	if email == "" {
		return
	}
	validator.MaxLen(FieldEmail, email, MaxEmailLen).Email(FieldEmail, email)
}

// CheckProfile applies the length rules of the free-form profile fields.
func CheckProfile(validator *validate.Validator, firstName, lastName string) {
	validator.MaxLen(FieldFirstName, firstName, MaxNameLen).
		MaxLen(FieldLastName, lastName, MaxNameLen)
}

// CheckRole rejects unknown roles.
func CheckRole(validator *validate.Validator, role string) {
	if _, ok := sec.ParseRole(role); !ok {
		validator.OneOf(FieldRole, role, sec.Roles...)
	}
}

/*
CheckUnique records a field error for a username or email held by an account
other than selfID (zero for a new account).

Storage failures are returned; field failures are left on the validator.
*/
func CheckUnique(context context.Context, users UserRepository, validator *validate.Validator, username, email string, selfID int64) error {
	if username != "" {
		existing, err := users.FindByUsername(context, username)
		switch {
		case err == nil && existing.ID != selfID:
			validator.Custom(FieldUsername, true, "A user with that username already exists")
		case err != nil && !apperr.IsNotFound(err):
			return err
		}
	}

	if email != "" {
		existing, err := users.FindByEmail(context, email)
		switch {
		case err == nil && existing.ID != selfID:
			validator.Custom(FieldEmail, true, "A user with that email already exists")
		case err != nil && !apperr.IsNotFound(err):
			return err
		}
	}

	return nil
}
