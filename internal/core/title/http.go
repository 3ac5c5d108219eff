// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/convert"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the title endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): list and retrieve.
//   - Management (Admin): create, replace, patch and delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.With(middleware.Authorize(access.KindTitle, access.ActionList)).Get("/", handler.list)
	router.With(middleware.Authorize(access.KindTitle, access.ActionRetrieve)).Get("/{title_id}", handler.get)

	router.With(middleware.Authorize(access.KindTitle, access.ActionCreate)).Post("/", handler.create)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.Authorize(access.KindTitle, access.ActionUpdate))
		admin.Put("/{title_id}", handler.replace)
		admin.Patch("/{title_id}", handler.patch)
	})
	router.With(middleware.Authorize(access.KindTitle, access.ActionDelete)).Delete("/{title_id}", handler.delete)

	return router
}

/*
GET /api/v1/titles.

Request:
  - category: Category slug
  - genre: Genre slug
  - name: Exact name
  - year: Exact year
  - limit, offset: Window pagination

Response:
  - 200: []Title (paginated)
  - 400: VALIDATION_ERROR: Non-numeric year
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
	}

	if raw := query.Get("year"); raw != "" {
		year, ok := convert.ToIntStrict(raw)
		if !ok {
			respond.Error(writer, request, validate.RequiredError(FieldYear, "Enter a number"))
			return
		}
		filter.Year = &year
	}

	window := pagination.WindowFromRequest(request)
	titles, total, err := handler.service.List(request.Context(), filter, window.Limit, window.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, window.Meta(request, total))
}

// GET /api/v1/titles/{title_id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IDParam(request, "title_id", resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
POST /api/v1/titles.

Request:
  - Body: WriteInput (genre and category given as slugs)

Response:
  - 201: Title: Read representation
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input WriteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// PUT /api/v1/titles/{title_id}.
func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	handler.write(writer, request, handler.service.Replace)
}

// PATCH /api/v1/titles/{title_id}.
func (handler *Handler) patch(writer http.ResponseWriter, request *http.Request) {
	handler.write(writer, request, handler.service.Patch)
}

type writeFunc func(context.Context, int64, WriteInput) (*Title, error)

func (handler *Handler) write(writer http.ResponseWriter, request *http.Request, apply writeFunc) {
	id, err := requestutil.IDParam(request, "title_id", resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input WriteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := apply(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// DELETE /api/v1/titles/{title_id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IDParam(request, "title_id", resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
