// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for reviews.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted under /titles/{title_id}/reviews.
//
// Collection-level access is decided here; ownership is checked by the
// service once the review is loaded.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.With(middleware.Authorize(access.KindReview, access.ActionList)).Get("/", handler.list)
	router.With(middleware.Authorize(access.KindReview, access.ActionCreate)).Post("/", handler.create)
	router.With(middleware.Authorize(access.KindReview, access.ActionRetrieve)).Get("/{review_id}", handler.get)
	router.Group(func(owner chi.Router) {
		owner.Use(middleware.Authorize(access.KindReview, access.ActionUpdate))
		owner.Put("/{review_id}", handler.replace)
		owner.Patch("/{review_id}", handler.patch)
	})
	router.With(middleware.Authorize(access.KindReview, access.ActionDelete)).Delete("/{review_id}", handler.delete)

	return router
}

// ids parses the title and review IDs from the path.
func ids(request *http.Request) (int64, int64, error) {
	titleID, err := requestutil.IDParam(request, "title_id", "Title")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := requestutil.IDParam(request, "review_id", resourceReview)
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

/*
GET /api/v1/titles/{title_id}/reviews.

Request:
  - page: 1-indexed page number

Response:
  - 200: []Review (paginated)
  - 404: NOT_FOUND: Missing title or page
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IDParam(request, "title_id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := pagination.PageFromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Page"))
		return
	}

	reviews, total, err := handler.service.List(request.Context(), titleID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, page.Meta(request, total))
}

/*
POST /api/v1/titles/{title_id}/reviews.

Response:
  - 201: Review
  - 400: VALIDATION_ERROR: Bad input or a second review of the title
  - 404: NOT_FOUND: Missing title
  - 409: CONFLICT: Concurrent duplicate review
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IDParam(request, "title_id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), requestutil.Identity(request), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// GET /api/v1/titles/{title_id}/reviews/{review_id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// PUT /api/v1/titles/{title_id}/reviews/{review_id}.
func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	handler.update(writer, request, true)
}

// PATCH /api/v1/titles/{title_id}/reviews/{review_id}.
func (handler *Handler) patch(writer http.ResponseWriter, request *http.Request) {
	handler.update(writer, request, false)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request, full bool) {
	titleID, reviewID, err := ids(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Update(request.Context(), requestutil.Identity(request), titleID, reviewID, input, full)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// DELETE /api/v1/titles/{title_id}/reviews/{review_id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Identity(request), titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
