// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "regexp"

// # Field Constraints

const (
	MaxUsernameLen = 150
	MaxEmailLen    = 254
	MaxNameLen     = 150

	// ReservedUsername collides with the self-service /users/me route.
	ReservedUsername = "me"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

const usernamePatternMessage = "Letters, digits and @/./+/-/_ only"
