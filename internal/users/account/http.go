// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for user administration.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the users endpoints.
//
// /me is registered before /{username} and answers 405 for every method
// except GET and PATCH, so it never falls through to the admin routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	// Self service
	router.With(middleware.Authorize(access.KindProfile, access.ActionRetrieve)).Get("/me", handler.getMe)
	router.With(middleware.Authorize(access.KindProfile, access.ActionUpdate)).Patch("/me", handler.updateMe)
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		router.MethodFunc(method, "/me", respond.MethodNotAllowed)
	}

	// Administration
	router.With(middleware.Authorize(access.KindUser, access.ActionList)).Get("/", handler.list)
	router.With(middleware.Authorize(access.KindUser, access.ActionCreate)).Post("/", handler.create)
	router.With(middleware.Authorize(access.KindUser, access.ActionRetrieve)).Get("/{username}", handler.get)
	router.With(middleware.Authorize(access.KindUser, access.ActionUpdate)).Patch("/{username}", handler.update)
	router.With(middleware.Authorize(access.KindUser, access.ActionDelete)).Delete("/{username}", handler.delete)

	return router
}

// # Administration Endpoints

/*
GET /api/v1/users.

Request:
  - search: Username substring, case-insensitive
  - limit, offset: Window pagination

Response:
  - 200: []User (paginated)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	window := pagination.WindowFromRequest(request)
	filter := auth.UserFilter{Search: request.URL.Query().Get("search")}

	users, total, err := handler.accountService.List(request.Context(), filter, window.Limit, window.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, window.Meta(request, total))
}

/*
POST /api/v1/users.

Response:
  - 201: User
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// GET /api/v1/users/{username}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.Get(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// PATCH /api/v1/users/{username}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Update(request.Context(), requestutil.Param(request, "username"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// DELETE /api/v1/users/{username}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.Delete(request.Context(), requestutil.Param(request, "username")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self Service Endpoints

/*
GET /api/v1/users/me.

Response:
  - 200: User: The caller's account
  - 401: UNAUTHORIZED
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Me(request.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Applies a partial profile change. A submitted role is ignored.

Response:
  - 200: User: The updated account
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateMe(request.Context(), identity.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
