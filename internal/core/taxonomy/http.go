// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler exposes one vocabulary over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new taxonomy [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with list, create and delete. Terms have no
// detail or update endpoints; other methods on /{slug} answer 405.
func (handler *Handler) Routes() chi.Router {
	kind := handler.service.Vocabulary().Kind

	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.With(middleware.Authorize(kind, access.ActionList)).Get("/", handler.list)
	router.With(middleware.Authorize(kind, access.ActionCreate)).Post("/", handler.create)
	router.With(middleware.Authorize(kind, access.ActionDelete)).Delete("/{slug}", handler.delete)

	return router
}

/*
GET /api/v1/{categories|genres}.

Request:
  - search: Exact name, case-insensitive
  - limit, offset: Window pagination

Response:
  - 200: []Term (paginated)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	window := pagination.WindowFromRequest(request)

	terms, total, err := handler.service.List(request.Context(), request.URL.Query().Get("search"), window.Limit, window.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, terms, window.Meta(request, total))
}

/*
POST /api/v1/{categories|genres}.

Response:
  - 201: Term
  - 400: VALIDATION_ERROR
  - 401, 403: Admin only
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	term, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, term)
}

// DELETE /api/v1/{categories|genres}/{slug}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
