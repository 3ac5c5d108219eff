// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
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
	"github.com/taibuivan/yamdb/internal/core/comment"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// memoryComments resolves author names from accounts, as the SQL join does.
type memoryComments struct {
	comments map[int64]*comment.Comment
	accounts map[int64]string
	nextID   int64
	clock    time.Time
}

func newMemoryComments() *memoryComments {
	return &memoryComments{
		comments: map[int64]*comment.Comment{},
		accounts: map[int64]string{ann.UserID: ann.Username, bob.UserID: bob.Username, admin.UserID: admin.Username},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryComments) read(item *comment.Comment) *comment.Comment {
	clone := *item
	clone.Author = m.accounts[item.AuthorID]
	return &clone
}

func (m *memoryComments) List(_ context.Context, reviewID int64, limit, offset int) ([]*comment.Comment, int, error) {
	matched := []*comment.Comment{}
	for _, item := range m.comments {
		if item.ReviewID == reviewID {
			matched = append(matched, m.read(item))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PubDate.After(matched[j].PubDate) })
	if offset >= len(matched) {
		return []*comment.Comment{}, len(matched), nil
	}
	return matched[offset:min(offset+limit, len(matched))], len(matched), nil
}

func (m *memoryComments) FindByID(_ context.Context, reviewID, id int64) (*comment.Comment, error) {
	item, ok := m.comments[id]
	if !ok || item.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return m.read(item), nil
}

func (m *memoryComments) Create(_ context.Context, item *comment.Comment) error {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	item.ID, item.PubDate = m.nextID, m.clock
	clone := *item
	m.comments[item.ID] = &clone
	return nil
}

func (m *memoryComments) Update(_ context.Context, item *comment.Comment) error {
	clone := *item
	m.comments[item.ID] = &clone
	return nil
}

func (m *memoryComments) Delete(_ context.Context, id int64) error {
	delete(m.comments, id)
	return nil
}

// reviewsOf maps review IDs to the title they belong to.
type reviewsOf map[int64]int64

func (reviews reviewsOf) Locate(_ context.Context, titleID, reviewID int64) error {
	if owner, ok := reviews[reviewID]; !ok || owner != titleID {
		return apperr.NotFound("Review")
	}
	return nil
}

var (
	ann   = &access.Identity{UserID: 1, Username: "ann", Role: sec.RoleUser}
	bob   = &access.Identity{UserID: 2, Username: "bob", Role: sec.RoleUser}
	admin = &access.Identity{UserID: 9, Username: "root", Role: sec.RoleAdmin}

	onReview = comment.Path{TitleID: 1, ReviewID: 10}
)

func newService() *comment.Service {
	service, _ := newServiceWith()
	return service
}

func newServiceWith() (*comment.Service, *memoryComments) {
	repository := newMemoryComments()
	return comment.NewService(repository, reviewsOf{10: 1, 20: 2}), repository
}

func statusOf(err error) int {
	if appError := apperr.As(err); appError != nil {
		return appError.HTTPStatus
	}
	return 0
}

/*
TestService_Create verifies text validation and the review lookup.
*/
func TestService_Create(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ann, onReview, comment.Input{Text: pointer.To("  Agreed  ")})
	require.NoError(t, err)
	assert.Equal(t, "Agreed", created.Text)
	assert.Equal(t, "ann", created.Author)

	_, err = service.Create(ctx, ann, onReview, comment.Input{Text: pointer.To(" ")})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = service.Create(ctx, ann, onReview, comment.Input{})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = service.Create(ctx, ann, comment.Path{TitleID: 2, ReviewID: 10}, comment.Input{Text: pointer.To("x")})
	assert.Equal(t, http.StatusNotFound, statusOf(err), "review under the wrong title")

	_, err = service.Create(ctx, nil, onReview, comment.Input{Text: pointer.To("x")})
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}

/*
TestService_CreateUsesCurrentUsername verifies that the created comment names
the account's current username rather than the one in the token.
*/
func TestService_CreateUsesCurrentUsername(t *testing.T) {
	service, repository := newServiceWith()
	repository.accounts[ann.UserID] = "ann_renamed"

	created, err := service.Create(context.Background(), ann, onReview, comment.Input{Text: pointer.To("Agreed")})
	require.NoError(t, err)
	assert.Equal(t, "ann_renamed", created.Author)
	assert.Equal(t, "Agreed", created.Text)
}

/*
TestService_Ownership verifies author and admin rights over a comment.
*/
func TestService_Ownership(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ann, onReview, comment.Input{Text: pointer.To("First")})
	require.NoError(t, err)

	_, err = service.Update(ctx, bob, onReview, created.ID, comment.Input{Text: pointer.To("Mine now")}, false)
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	unchanged, err := service.Update(ctx, ann, onReview, created.ID, comment.Input{}, false)
	require.NoError(t, err)
	assert.Equal(t, "First", unchanged.Text)

	_, err = service.Update(ctx, ann, onReview, created.ID, comment.Input{}, true)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = service.Get(ctx, comment.Path{TitleID: 2, ReviewID: 20}, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err), "comment of another review")

	assert.Equal(t, http.StatusForbidden, statusOf(service.Delete(ctx, bob, onReview, created.ID)))
	assert.NoError(t, service.Delete(ctx, admin, onReview, created.ID))
}

/*
TestService_List verifies pagination bounds for a review's comments.
*/
func TestService_List(t *testing.T) {
	service := newService()
	ctx := context.Background()

	for range 3 {
		_, err := service.Create(ctx, ann, onReview, comment.Input{Text: pointer.To("t")})
		require.NoError(t, err)
	}

	items, total, err := service.List(ctx, onReview, pagination.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ID)

	_, _, err = service.List(ctx, onReview, pagination.Page{Number: 2, Size: 10})
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	_, _, err = service.List(ctx, comment.Path{TitleID: 1, ReviewID: 99}, pagination.Page{Number: 1, Size: 10})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func serve(service *comment.Service, identity *access.Identity, method, path, body string) *httptest.ResponseRecorder {
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
	router.Mount("/titles/{title_id}/reviews/{review_id}/comments", comment.NewHandler(service).Routes())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

/*
TestRoutes verifies status codes through the doubly nested mount.
*/
func TestRoutes(t *testing.T) {
	service := newService()
	base := "/titles/1/reviews/10/comments"

	assert.Equal(t, http.StatusUnauthorized, serve(service, nil, http.MethodPost, base, `{"text":"Hi"}`).Code)

	recorder := serve(service, ann, http.MethodPost, base, `{"text":"Hi"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"author":"ann"`)

	assert.Equal(t, http.StatusOK, serve(service, nil, http.MethodGet, base, "").Code)
	assert.Equal(t, http.StatusOK, serve(service, nil, http.MethodGet, base+"/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(service, nil, http.MethodGet, base+"/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(service, nil, http.MethodGet, "/titles/2/reviews/10/comments", "").Code)

	assert.Equal(t, http.StatusForbidden, serve(service, bob, http.MethodPut, base+"/1", `{"text":"x"}`).Code)
	assert.Equal(t, http.StatusOK, serve(service, ann, http.MethodPut, base+"/1", `{"text":"Edited"}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(service, ann, http.MethodPost, base+"/1", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(service, admin, http.MethodDelete, base+"/1", "").Code)
}
