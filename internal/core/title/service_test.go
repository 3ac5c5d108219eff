// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Test Doubles

type memoryTitles struct {
	records map[int64]*Record
	nextID  int64
}

func (m *memoryTitles) List(_ context.Context, _ Filter, _, _ int) ([]*Title, int, error) {
	titles := []*Title{}
	for id := range m.records {
		title, _ := m.FindByID(context.Background(), id)
		titles = append(titles, title)
	}
	return titles, len(titles), nil
}

func (m *memoryTitles) FindByID(_ context.Context, id int64) (*Title, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, apperr.NotFound(resourceTitle)
	}
	title := &Title{ID: id, Name: record.Name, Year: record.Year, Description: record.Description, categoryID: record.CategoryID}
	for _, genreID := range record.GenreIDs {
		title.Genres = append(title.Genres, &taxonomy.Term{ID: genreID})
	}
	return title, nil
}

func (m *memoryTitles) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.records[id]
	return ok, nil
}

func (m *memoryTitles) NameTaken(_ context.Context, name string, selfID int64) (bool, error) {
	for id, record := range m.records {
		if id != selfID && record.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryTitles) Create(_ context.Context, record *Record) error {
	m.nextID++
	record.ID = m.nextID
	clone := *record
	m.records[record.ID] = &clone
	return nil
}

func (m *memoryTitles) Update(_ context.Context, record *Record) error {
	current, ok := m.records[record.ID]
	if !ok {
		return apperr.NotFound(resourceTitle)
	}
	clone := *record
	if clone.GenreIDs == nil {
		clone.GenreIDs = current.GenreIDs
	}
	m.records[record.ID] = &clone
	return nil
}

func (m *memoryTitles) Delete(_ context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return apperr.NotFound(resourceTitle)
	}
	delete(m.records, id)
	return nil
}

type staticTerms map[string]int64

func (terms staticTerms) Resolve(_ context.Context, slugs []string) ([]*taxonomy.Term, []string, error) {
	found := []*taxonomy.Term{}
	var missing []string
	for _, slug := range slugs {
		if id, ok := terms[slug]; ok {
			found = append(found, &taxonomy.Term{ID: id, Slug: slug})
		} else {
			missing = append(missing, slug)
		}
	}
	return found, missing, nil
}

func newService() (*Service, *memoryTitles) {
	repository := &memoryTitles{records: map[int64]*Record{}}
	service := NewService(repository, staticTerms{"movie": 1, "book": 2}, staticTerms{"drama": 10, "comedy": 11})
	service.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return service, repository
}

func validInput() WriteInput {
	return WriteInput{
		Name:     pointer.To("Fargo"),
		Year:     pointer.To(1996),
		Genre:    []string{"drama", "comedy"},
		Category: pointer.To("movie"),
	}
}

func fieldsOf(err error) []string {
	var fields []string
	if appError := apperr.As(err); appError != nil {
		for _, detail := range appError.Details {
			fields = append(fields, detail.Field)
		}
	}
	return fields
}

// # Service

/*
TestService_Create verifies slug resolution and the stored links.
*/
func TestService_Create(t *testing.T) {
	service, repository := newService()

	title, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "Fargo", title.Name)

	record := repository.records[title.ID]
	require.NotNil(t, record.CategoryID)
	assert.Equal(t, int64(1), *record.CategoryID)
	assert.Equal(t, []int64{10, 11}, record.GenreIDs)
}

/*
TestService_CreateValidation verifies required fields, year bounds, unknown
slugs and name uniqueness.
*/
func TestService_CreateValidation(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	_, err := service.Create(ctx, WriteInput{})
	assert.ElementsMatch(t, []string{FieldName, FieldYear, FieldGenre, FieldCategory}, fieldsOf(err))

	input := validInput()
	input.Year = pointer.To(2027)
	_, err = service.Create(ctx, input)
	assert.Equal(t, []string{FieldYear}, fieldsOf(err))

	input = validInput()
	input.Year = pointer.To(0)
	_, err = service.Create(ctx, input)
	assert.Equal(t, []string{FieldYear}, fieldsOf(err))

	input = validInput()
	input.Genre = []string{"drama", "western"}
	input.Category = pointer.To("game")
	_, err = service.Create(ctx, input)
	assert.ElementsMatch(t, []string{FieldGenre, FieldCategory}, fieldsOf(err))

	_, err = service.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = service.Create(ctx, validInput())
	assert.Equal(t, []string{FieldName}, fieldsOf(err))
}

/*
TestService_PatchAndReplace verifies partial updates keep unsent fields and
full replacement clears the description.
*/
func TestService_PatchAndReplace(t *testing.T) {
	service, repository := newService()
	ctx := context.Background()

	input := validInput()
	input.Description = pointer.To("Snow")
	created, err := service.Create(ctx, input)
	require.NoError(t, err)

	patched, err := service.Patch(ctx, created.ID, WriteInput{Year: pointer.To(1997)})
	require.NoError(t, err)
	assert.Equal(t, 1997, patched.Year)
	assert.Equal(t, "Fargo", patched.Name)
	assert.Equal(t, pointer.To("Snow"), patched.Description)
	assert.Equal(t, []int64{10, 11}, repository.records[created.ID].GenreIDs)
	assert.Equal(t, int64(1), *repository.records[created.ID].CategoryID)

	_, err = service.Patch(ctx, created.ID, WriteInput{Name: pointer.To("Fargo")})
	assert.NoError(t, err, "a title never conflicts with itself")

	replacement := validInput()
	replacement.Genre = []string{}
	replaced, err := service.Replace(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.Nil(t, replaced.Description)
	assert.Empty(t, repository.records[created.ID].GenreIDs)

	_, err = service.Replace(ctx, 99, validInput())
	assert.True(t, apperr.IsNotFound(err))
}

// # HTTP

func serve(service *Service, claims *sec.AuthClaims, method, path, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/titles", NewHandler(service).Routes())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

/*
TestRoutes verifies access rules, ID parsing and filter parsing.
*/
func TestRoutes(t *testing.T) {
	service, _ := newService()
	admin := &sec.AuthClaims{UserID: 1, Username: "root", Role: string(sec.RoleAdmin)}
	moderator := &sec.AuthClaims{UserID: 2, Username: "mod", Role: string(sec.RoleModerator)}
	body := `{"name":"Fargo","year":1996,"genre":["drama"],"category":"movie"}`

	assert.Equal(t, http.StatusUnauthorized, serve(service, nil, http.MethodPost, "/titles", body).Code)
	assert.Equal(t, http.StatusForbidden, serve(service, moderator, http.MethodPost, "/titles", body).Code)

	recorder := serve(service, admin, http.MethodPost, "/titles", body)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Fargo"`)

	assert.Equal(t, http.StatusOK, serve(service, nil, http.MethodGet, "/titles/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(service, nil, http.MethodGet, "/titles/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(service, nil, http.MethodGet, "/titles/42", "").Code)

	assert.Equal(t, http.StatusBadRequest, serve(service, nil, http.MethodGet, "/titles?year=nineteen", "").Code)
	assert.Equal(t, http.StatusOK, serve(service, nil, http.MethodGet, "/titles?year=1996", "").Code)

	assert.Equal(t, http.StatusForbidden, serve(service, moderator, http.MethodPatch, "/titles/1", `{"year":1990}`).Code)
	assert.Equal(t, http.StatusOK, serve(service, admin, http.MethodPatch, "/titles/1", `{"year":1990}`).Code)
	assert.Equal(t, http.StatusOK, serve(service, admin, http.MethodPut, "/titles/1", body).Code)
	assert.Equal(t, http.StatusNoContent, serve(service, admin, http.MethodDelete, "/titles/1", "").Code)
}
