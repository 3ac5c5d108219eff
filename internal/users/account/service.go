// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Service Layer

// Service orchestrates account administration and profile updates.
type Service struct {
	users auth.UserRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(users auth.UserRepository) *Service {
	return &Service{users: users}
}

// # Directory

// List returns one window of accounts, optionally narrowed by username search.
func (service *Service) List(context context.Context, filter auth.UserFilter, limit, offset int) ([]*auth.User, int, error) {
	return service.users.List(context, filter, limit, offset)
}

// Get returns the account with the given username.
func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.users.FindByUsername(context, username)
}

/*
Create registers an account on behalf of an admin.

Description: Applies the signup field rules plus the profile and role rules.
The role defaults to "user".

Returns:
  - *auth.User: The stored account
  - error: VALIDATION_ERROR, CONFLICT
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	auth.CheckUsername(validator, input.Username)
	auth.CheckEmail(validator, input.Email)
	auth.CheckProfile(validator, input.FirstName, input.LastName)
	auth.CheckRole(validator, input.Role)
	if err := auth.CheckUnique(context, service.users, validator, input.Username, input.Email, 0); err != nil {
		return nil, err
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Update applies a partial admin change to the account named username.
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return service.apply(context, user, input, true)
}

// Delete removes the account named username.
func (service *Service) Delete(context context.Context, username string) error {
	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return err
	}
	if err := service.users.Delete(context, user.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_deleted", slog.Int64("user_id", user.ID))
	return nil
}

// # Self Service

// Me returns the caller's own account.
func (service *Service) Me(context context.Context, userID int64) (*auth.User, error) {
	return service.users.FindByID(context, userID)
}

// UpdateMe applies a partial change to the caller's account. Role is ignored.
func (service *Service) UpdateMe(context context.Context, userID int64, input UpdateInput) (*auth.User, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	input.Role = nil
	return service.apply(context, user, input, false)
}

/*
apply validates and persists a partial change.

Description: Only provided fields are validated against the rules of their
field. Uniqueness is checked for a changed username or email. An email
change bumps the token version so outstanding confirmation codes, which are
bound to the old address, stop verifying.
*/
func (service *Service) apply(context context.Context, user *auth.User, input UpdateInput, allowRole bool) (*auth.User, error) {
	username := strings.TrimSpace(pointer.Fallback(input.Username, user.Username))
	email := strings.TrimSpace(pointer.Fallback(input.Email, user.Email))
	firstName := pointer.Fallback(input.FirstName, user.FirstName)
	lastName := pointer.Fallback(input.LastName, user.LastName)

	validator := &validate.Validator{}
	if input.Username != nil {
		auth.CheckUsername(validator, username)
	}
	if input.Email != nil {
		auth.CheckEmail(validator, email)
	}
	auth.CheckProfile(validator, firstName, lastName)
	if allowRole && input.Role != nil {
		auth.CheckRole(validator, *input.Role)
	}

	uniqueUsername, uniqueEmail := "", ""
	if username != user.Username {
		uniqueUsername = username
	}
	if email != user.Email {
		uniqueEmail = email
	}
	if err := auth.CheckUnique(context, service.users, validator, uniqueUsername, uniqueEmail, user.ID); err != nil {
		return nil, err
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	user.FirstName = firstName
	user.LastName = lastName
	user.Bio = pointer.Fallback(input.Bio, user.Bio)
	if allowRole && input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}

	if err := service.users.Update(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_updated", slog.Int64("user_id", user.ID))
	return user, nil
}
