// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides in-memory doubles of the auth storage contracts
// for tests of packages that depend on user accounts.
package authtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// Users is an in-memory [auth.UserRepository].
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*auth.User
}

// NewUsers returns a repository seeded with copies of users.
func NewUsers(users ...*auth.User) *Users {
	repository := &Users{byID: make(map[int64]*auth.User)}
	for _, user := range users {
		if err := repository.Create(context.Background(), user); err != nil {
			panic(err)
		}
	}
	return repository
}

// Get returns a copy of the stored user, or nil.
func (repository *Users) Get(id int64) *auth.User {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil
	}
	clone := *user
	return &clone
}

func (repository *Users) find(match func(*auth.User) bool) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, user := range repository.byID {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *Users) FindByID(_ context.Context, id int64) (*auth.User, error) {
	return repository.find(func(user *auth.User) bool { return user.ID == id })
}

func (repository *Users) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repository.find(func(user *auth.User) bool { return user.Username == username })
}

func (repository *Users) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repository.find(func(user *auth.User) bool { return user.Email == email })
}

// conflicts mirrors the unique constraints on username and email.
func (repository *Users) conflicts(candidate *auth.User) bool {
	for _, user := range repository.byID {
		if user.ID != candidate.ID && (user.Username == candidate.Username || user.Email == candidate.Email) {
			return true
		}
	}
	return false
}

func (repository *Users) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if user.Role == "" {
		user.Role = "user"
	}
	if user.ID == 0 {
		repository.nextID++
		user.ID = repository.nextID
	} else if user.ID > repository.nextID {
		repository.nextID = user.ID
	}
	if repository.conflicts(user) {
		return apperr.Conflict("User already exists")
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}

	clone := *user
	repository.byID[user.ID] = &clone
	return nil
}

func (repository *Users) Update(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.byID[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	if repository.conflicts(user) {
		return apperr.Conflict("User already exists")
	}

	version := stored.TokenVersion
	if stored.Email != user.Email {
		version++
	}

	clone := *user
	clone.TokenVersion = version
	clone.IsSuperuser = stored.IsSuperuser
	clone.DateJoined = stored.DateJoined
	repository.byID[user.ID] = &clone
	user.TokenVersion = version
	return nil
}

func (repository *Users) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.byID[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repository.byID, id)
	return nil
}

func (repository *Users) List(_ context.Context, filter auth.UserFilter, limit, offset int) ([]*auth.User, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]*auth.User, 0)
	for _, user := range repository.byID {
		if search == "" || strings.Contains(strings.ToLower(user.Username), search) {
			clone := *user
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := len(matched)
	if offset >= total {
		return []*auth.User{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (repository *Users) ConsumeTokenVersion(_ context.Context, id, version int64) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.byID[id]
	if !ok || user.TokenVersion != version {
		return false, nil
	}
	user.TokenVersion++
	return true, nil
}

// Attempts is an in-memory [auth.AttemptCounter] that ignores the window.
type Attempts struct {
	mu       sync.Mutex
	failures map[string]int
}

// NewAttempts returns an empty counter.
func NewAttempts() *Attempts {
	return &Attempts{failures: make(map[string]int)}
}

func (counter *Attempts) Failures(_ context.Context, username string) (int, error) {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	return counter.failures[strings.ToLower(username)], nil
}

func (counter *Attempts) RecordFailure(_ context.Context, username string, _ time.Duration) error {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	counter.failures[strings.ToLower(username)]++
	return nil
}

func (counter *Attempts) Reset(_ context.Context, username string) error {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	delete(counter.failures, strings.ToLower(username))
	return nil
}
