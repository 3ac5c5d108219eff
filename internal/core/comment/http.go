// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted under
// /titles/{title_id}/reviews/{review_id}/comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.With(middleware.Authorize(access.KindComment, access.ActionList)).Get("/", handler.list)
	router.With(middleware.Authorize(access.KindComment, access.ActionCreate)).Post("/", handler.create)
	router.With(middleware.Authorize(access.KindComment, access.ActionRetrieve)).Get("/{comment_id}", handler.get)
	router.Group(func(owner chi.Router) {
		owner.Use(middleware.Authorize(access.KindComment, access.ActionUpdate))
		owner.Put("/{comment_id}", handler.replace)
		owner.Patch("/{comment_id}", handler.patch)
	})
	router.With(middleware.Authorize(access.KindComment, access.ActionDelete)).Delete("/{comment_id}", handler.delete)

	return router
}

func pathOf(request *http.Request) (Path, error) {
	titleID, err := requestutil.IDParam(request, "title_id", "Title")
	if err != nil {
		return Path{}, err
	}
	reviewID, err := requestutil.IDParam(request, "review_id", "Review")
	if err != nil {
		return Path{}, err
	}
	return Path{TitleID: titleID, ReviewID: reviewID}, nil
}

func target(request *http.Request) (Path, int64, error) {
	path, err := pathOf(request)
	if err != nil {
		return Path{}, 0, err
	}
	id, err := requestutil.IDParam(request, "comment_id", resourceComment)
	if err != nil {
		return Path{}, 0, err
	}
	return path, id, nil
}

/*
GET /api/v1/titles/{title_id}/reviews/{review_id}/comments.

Response:
  - 200: []Comment (paginated)
  - 404: NOT_FOUND: Missing title, review or page
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	path, err := pathOf(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := pagination.PageFromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Page"))
		return
	}

	comments, total, err := handler.service.List(request.Context(), path, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, page.Meta(request, total))
}

// POST /api/v1/titles/{title_id}/reviews/{review_id}/comments.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	path, err := pathOf(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), requestutil.Identity(request), path, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	path, id, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), path, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	handler.update(writer, request, true)
}

func (handler *Handler) patch(writer http.ResponseWriter, request *http.Request) {
	handler.update(writer, request, false)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request, full bool) {
	path, id, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), requestutil.Identity(request), path, id, input, full)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// DELETE /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	path, id, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Identity(request), path, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
