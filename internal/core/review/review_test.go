// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/core/review"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Test Doubles

// memoryReviews resolves author names from accounts, as the SQL join does.
type memoryReviews struct {
	reviews  map[int64]*review.Review
	accounts map[int64]string
	nextID   int64
	clock    time.Time
}

func newMemoryReviews() *memoryReviews {
	return &memoryReviews{
		reviews:  map[int64]*review.Review{},
		accounts: map[int64]string{ann.UserID: ann.Username, bob.UserID: bob.Username, moderator.UserID: moderator.Username},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryReviews) read(item *review.Review) *review.Review {
	clone := *item
	clone.Author = m.accounts[item.AuthorID]
	return &clone
}

func (m *memoryReviews) List(_ context.Context, titleID int64, limit, offset int) ([]*review.Review, int, error) {
	matched := []*review.Review{}
	for _, item := range m.reviews {
		if item.TitleID == titleID {
			matched = append(matched, m.read(item))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PubDate.After(matched[j].PubDate) })
	if offset >= len(matched) {
		return []*review.Review{}, len(matched), nil
	}
	return matched[offset:min(offset+limit, len(matched))], len(matched), nil
}

func (m *memoryReviews) FindByID(_ context.Context, titleID, id int64) (*review.Review, error) {
	item, ok := m.reviews[id]
	if !ok || item.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return m.read(item), nil
}

func (m *memoryReviews) ExistsByAuthor(_ context.Context, titleID, authorID int64) (bool, error) {
	for _, item := range m.reviews {
		if item.TitleID == titleID && item.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryReviews) Create(_ context.Context, item *review.Review) error {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	item.ID, item.PubDate = m.nextID, m.clock
	clone := *item
	m.reviews[item.ID] = &clone
	return nil
}

func (m *memoryReviews) Update(_ context.Context, item *review.Review) error {
	clone := *item
	m.reviews[item.ID] = &clone
	return nil
}

func (m *memoryReviews) Delete(_ context.Context, id int64) error {
	delete(m.reviews, id)
	return nil
}

// knownTitles is a [review.TitleChecker] over a fixed set of IDs.
type knownTitles map[int64]bool

func (titles knownTitles) Exists(_ context.Context, id int64) error {
	if !titles[id] {
		return apperr.NotFound("Title")
	}
	return nil
}

var (
	ann       = &access.Identity{UserID: 1, Username: "ann", Role: sec.RoleUser}
	bob       = &access.Identity{UserID: 2, Username: "bob", Role: sec.RoleUser}
	moderator = &access.Identity{UserID: 3, Username: "mod", Role: sec.RoleModerator}
)

func newService() (*review.Service, *memoryReviews) {
	repository := newMemoryReviews()
	return review.NewService(repository, knownTitles{1: true, 2: true}), repository
}

func statusOf(err error) int {
	if appError := apperr.As(err); appError != nil {
		return appError.HTTPStatus
	}
	return 0
}

// # Service

/*
TestService_Create verifies validation, the missing title guard and the
one-review-per-author rule.
*/
func TestService_Create(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ann, 1, review.Input{Text: pointer.To("Great"), Score: pointer.To(9)})
	require.NoError(t, err)
	assert.Equal(t, "ann", created.Author)
	assert.False(t, created.PubDate.IsZero())

	_, err = service.Create(ctx, ann, 1, review.Input{Text: pointer.To("Again"), Score: pointer.To(8)})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = service.Create(ctx, ann, 2, review.Input{Text: pointer.To("Other title"), Score: pointer.To(8)})
	assert.NoError(t, err, "the same author may review another title")

	_, err = service.Create(ctx, bob, 99, review.Input{Text: pointer.To("x"), Score: pointer.To(5)})
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	for _, score := range []int{0, 11} {
		_, err = service.Create(ctx, bob, 1, review.Input{Text: pointer.To("x"), Score: pointer.To(score)})
		assert.Equal(t, http.StatusBadRequest, statusOf(err), "score %d", score)
	}

	_, err = service.Create(ctx, bob, 1, review.Input{Score: pointer.To(5)})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = service.Create(ctx, nil, 1, review.Input{Text: pointer.To("x"), Score: pointer.To(5)})
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}

/*
TestService_CreateUsesCurrentUsername verifies that the created review names
the account's current username rather than the one in the token.
*/
func TestService_CreateUsesCurrentUsername(t *testing.T) {
	service, repository := newService()
	repository.accounts[ann.UserID] = "ann_renamed"

	created, err := service.Create(context.Background(), ann, 1, review.Input{Text: pointer.To("Great"), Score: pointer.To(9)})
	require.NoError(t, err)
	assert.Equal(t, "ann_renamed", created.Author)
	assert.Equal(t, 9, created.Score)
}

/*
TestService_Ownership verifies that only the author or a moderator may
change a review.
*/
func TestService_Ownership(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ann, 1, review.Input{Text: pointer.To("Great"), Score: pointer.To(9)})
	require.NoError(t, err)

	_, err = service.Update(ctx, bob, 1, created.ID, review.Input{Score: pointer.To(1)}, false)
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	updated, err := service.Update(ctx, ann, 1, created.ID, review.Input{Score: pointer.To(7)}, false)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Score)
	assert.Equal(t, "Great", updated.Text)

	_, err = service.Update(ctx, ann, 1, created.ID, review.Input{Score: pointer.To(7)}, true)
	assert.Equal(t, http.StatusBadRequest, statusOf(err), "replacement requires text")

	_, err = service.Update(ctx, ann, 2, created.ID, review.Input{Score: pointer.To(7)}, false)
	assert.Equal(t, http.StatusNotFound, statusOf(err), "review of another title")

	assert.Equal(t, http.StatusForbidden, statusOf(service.Delete(ctx, bob, 1, created.ID)))
	assert.NoError(t, service.Delete(ctx, moderator, 1, created.ID))
}

/*
TestService_ListPages verifies newest-first ordering and out-of-range pages.
*/
func TestService_ListPages(t *testing.T) {
	service, repository := newService()
	ctx := context.Background()

	for i := range 12 {
		author := &access.Identity{UserID: int64(100 + i), Username: fmt.Sprintf("u%d", i), Role: sec.RoleUser}
		repository.accounts[author.UserID] = author.Username
		_, err := service.Create(ctx, author, 1, review.Input{Text: pointer.To("t"), Score: pointer.To(5)})
		require.NoError(t, err)
	}

	first, total, err := service.List(ctx, 1, pagination.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, first, 10)
	assert.Equal(t, "u11", first[0].Author)

	second, _, err := service.List(ctx, 1, pagination.Page{Number: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, second, 2)

	_, _, err = service.List(ctx, 1, pagination.Page{Number: 3, Size: 10})
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	empty, _, err := service.List(ctx, 2, pagination.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// # HTTP

func serve(service *review.Service, identity *access.Identity, method, path, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if identity != nil {
				claims := &sec.AuthClaims{UserID: identity.UserID, Username: identity.Username, Role: string(identity.Role)}
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/titles/{title_id}/reviews", review.NewHandler(service).Routes())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

/*
TestRoutes verifies status codes through the nested mount.
*/
func TestRoutes(t *testing.T) {
	service, _ := newService()
	body := `{"text":"Great","score":9}`

	assert.Equal(t, http.StatusUnauthorized, serve(service, nil, http.MethodPost, "/titles/1/reviews", body).Code)

	recorder := serve(service, ann, http.MethodPost, "/titles/1/reviews", body)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"author":"ann"`)

	assert.Equal(t, http.StatusOK, serve(service, nil, http.MethodGet, "/titles/1/reviews", "").Code)
	assert.Equal(t, http.StatusOK, serve(service, nil, http.MethodGet, "/titles/1/reviews/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(service, nil, http.MethodGet, "/titles/1/reviews?page=2", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(service, nil, http.MethodGet, "/titles/1/reviews?page=zero", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(service, nil, http.MethodGet, "/titles/9/reviews", "").Code)

	assert.Equal(t, http.StatusUnauthorized, serve(service, nil, http.MethodPatch, "/titles/1/reviews/1", `{"score":1}`).Code)
	assert.Equal(t, http.StatusForbidden, serve(service, bob, http.MethodPatch, "/titles/1/reviews/1", `{"score":1}`).Code)
	assert.Equal(t, http.StatusOK, serve(service, moderator, http.MethodPatch, "/titles/1/reviews/1", `{"score":1}`).Code)
	assert.Equal(t, http.StatusNoContent, serve(service, ann, http.MethodDelete, "/titles/1/reviews/1", "").Code)
}
