// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access decides whether an identity may perform an action on a resource.

It has no transport or storage dependencies. HTTP middleware evaluates the
collection-level decision before the handler runs (the author is not known
yet); services re-evaluate at object level once the resource's author has
been loaded.

Evaluation order:

 1. Public reads are allowed for everyone, including anonymous callers.
 2. Anonymous callers are denied everything else with [DenyUnauthenticated].
 3. Role rules are checked, then ownership; a failure is [DenyForbidden].
*/
package access

import (
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Vocabulary

// Kind names a protected resource type.
type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
	KindTitle    Kind = "title"
	KindReview   Kind = "review"
	KindComment  Kind = "comment"
	KindUser     Kind = "user"
	KindProfile  Kind = "profile"
)

// Action is an operation on a resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// IsRead reports whether a is a non-mutating action.
func (a Action) IsRead() bool {
	return a == ActionList || a == ActionRetrieve
}

// IsObjectWrite reports whether a mutates an existing object.
func (a Action) IsObjectWrite() bool {
	return a == ActionUpdate || a == ActionDelete
}

// Identity is a verified caller. A nil *Identity is an anonymous caller.
type Identity struct {
	UserID   int64
	Username string
	Role     sec.UserRole
}

// Resource is the target of a request.
//
// HasAuthor is false for collection-level checks, where the owner is not yet known.
type Resource struct {
	Kind      Kind
	AuthorID  int64
	HasAuthor bool
}

// Collection returns a resource without a known author.
func Collection(kind Kind) Resource {
	return Resource{Kind: kind}
}

// Object returns a resource owned by authorID.
func Object(kind Kind, authorID int64) Resource {
	return Resource{Kind: kind, AuthorID: authorID, HasAuthor: true}
}

// # Decisions

// Decision is the outcome of [Decide].
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Allowed reports whether the decision permits the request.
func (d Decision) Allowed() bool { return d == Allow }

// Err returns the client-facing error for a denial, or nil for [Allow].
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return apperr.Unauthorized("Authentication credentials were not provided")
	default:
		return apperr.Forbidden("You do not have permission to perform this action")
	}
}

// Decide evaluates the policy registered for resource.Kind.
//
// Unknown kinds are denied.
func Decide(identity *Identity, action Action, resource Resource) Decision {
	request := Request{Identity: identity, Action: action, Resource: resource}

	rule, ok := policies[resource.Kind]
	if ok && rule(request) {
		return Allow
	}
	if identity == nil {
		return DenyUnauthenticated
	}
	return DenyForbidden
}

// Check is [Decide] returning the denial as an error.
func Check(identity *Identity, action Action, resource Resource) error {
	return Decide(identity, action, resource).Err()
}
