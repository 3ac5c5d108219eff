// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity: the account entity, its storage, and
the passwordless signup flow that exchanges a mailed confirmation code for a
bearer token.

The account administration endpoints live in the account package and reuse
the entity, repository and field rules defined here.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
//
// Only the profile fields are serialized; identifiers, the superuser flag and
// the token version never leave the server.
type User struct {
	ID           int64        `json:"-"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Bio          string       `json:"bio"`
	Role         sec.UserRole `json:"role"`
	IsSuperuser  bool         `json:"-"`
	TokenVersion int64        `json:"-"`
	DateJoined   time.Time    `json:"-"`
}

// EffectiveRole folds the superuser flag into the role.
func (user *User) EffectiveRole() sec.UserRole {
	return sec.EffectiveRole(user.Role, user.IsSuperuser)
}

// CodeSubject returns the state confirmation codes are bound to.
func (user *User) CodeSubject() sec.CodeSubject {
	return sec.CodeSubject{UserID: user.ID, Email: user.Email, Version: user.TokenVersion}
}

// Identity returns the access identity of the account.
func (user *User) Identity() *access.Identity {
	return &access.Identity{UserID: user.ID, Username: user.Username, Role: user.EffectiveRole()}
}

// # Field Identifiers

const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
)
