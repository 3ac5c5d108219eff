// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and the body decoding patterns so
every handler reports malformed input the same way.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/convert"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are ignored, so read-only fields sent by clients are dropped.
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IDParam parses a numeric URL parameter. A malformed value cannot name any
row, so it is reported as NOT_FOUND for resource.
*/
func IDParam(request *http.Request, name, resource string) (int64, error) {
	id, ok := convert.ToInt64Strict(chi.URLParam(request, name))
	if !ok || id < 1 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

/*
Identity returns the caller, or nil for anonymous requests.
*/
func Identity(request *http.Request) *access.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated.
*/
func RequiredIdentity(request *http.Request) (*access.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
