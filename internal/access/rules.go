// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import "github.com/taibuivan/yamdb/internal/platform/sec"

// Request bundles the inputs a [Rule] inspects.
type Request struct {
	Identity *Identity
	Action   Action
	Resource Resource
}

// Rule is a composable authorization predicate.
type Rule func(Request) bool

// # Predicates

// PublicRead allows list and retrieve for everyone.
func PublicRead(request Request) bool {
	return request.Action.IsRead()
}

// Authenticated allows any verified identity.
func Authenticated(request Request) bool {
	return request.Identity != nil
}

// RoleAtLeast allows identities whose role meets min.
func RoleAtLeast(min sec.UserRole) Rule {
	return func(request Request) bool {
		return request.Identity != nil && request.Identity.Role.AtLeast(min)
	}
}

// Owner allows the author of an object.
func Owner(request Request) bool {
	return request.Identity != nil &&
		request.Resource.HasAuthor &&
		request.Resource.AuthorID == request.Identity.UserID
}

// OnActions restricts a rule to the listed actions.
func OnActions(actions ...Action) Rule {
	return func(request Request) bool {
		for _, action := range actions {
			if request.Action == action {
				return true
			}
		}
		return false
	}
}

// ownerPending allows an authenticated object write whose author is not known
// yet. The service repeats the check with the loaded author.
func ownerPending(request Request) bool {
	return request.Identity != nil &&
		!request.Resource.HasAuthor &&
		request.Action.IsObjectWrite()
}

// # Combinators

// AnyOf allows when at least one rule allows.
func AnyOf(rules ...Rule) Rule {
	return func(request Request) bool {
		for _, rule := range rules {
			if rule(request) {
				return true
			}
		}
		return false
	}
}

// AllOf allows when every rule allows.
func AllOf(rules ...Rule) Rule {
	return func(request Request) bool {
		for _, rule := range rules {
			if !rule(request) {
				return false
			}
		}
		return true
	}
}

// # Policies

var (
	catalogPolicy = AnyOf(PublicRead, RoleAtLeast(sec.RoleAdmin))

	contributionPolicy = AnyOf(
		PublicRead,
		AllOf(OnActions(ActionCreate), Authenticated),
		RoleAtLeast(sec.RoleModerator),
		AllOf(OnActions(ActionUpdate, ActionDelete), Owner),
		ownerPending,
	)

	policies = map[Kind]Rule{
		KindCategory: catalogPolicy,
		KindGenre:    catalogPolicy,
		KindTitle:    catalogPolicy,
		KindReview:   contributionPolicy,
		KindComment:  contributionPolicy,
		KindUser:     RoleAtLeast(sec.RoleAdmin),
		KindProfile:  AllOf(Authenticated, OnActions(ActionRetrieve, ActionUpdate)),
	}
)
