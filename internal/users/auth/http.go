// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the public signup and token endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup : Registers a pair and mails a confirmation code.
//   - POST /token  : Exchanges a confirmation code for an access token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Responses

type tokenResponse struct {
	Token string `json:"token"`
}

/*
Signup requests a confirmation code for a (username, email) pair.

POST /api/v1/auth/signup

Request:
  - Body: SignupInput (username, email)

Response:
  - 200: SignupInput: The accepted pair
  - 400: VALIDATION_ERROR: Bad input
  - 409: CONFLICT: Concurrent registration of the same identity
  - 502: DELIVERY_FAILED: The mail could not be sent
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Token redeems a confirmation code.

POST /api/v1/auth/token

Response:
  - 200: {token}
  - 400: VALIDATION_ERROR: Missing fields or invalid code
  - 404: NOT_FOUND: Unknown username
  - 429: RATE_LIMITED: Too many failed attempts
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{Token: token})
}
