// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user administration and the self-service profile.

# Architecture

  - Entities: the [auth.User] account, reused from the auth package.
  - Storage: [auth.UserRepository]; this package adds no tables.
  - Security: the admin directory and /users/me are authorized by the router
    through the access policy. /users/me never changes the role.
*/
package account

// # Inputs

// CreateInput is an admin-submitted account.
type CreateInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateInput is a partial account change. Nil fields are left untouched.
type UpdateInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}
