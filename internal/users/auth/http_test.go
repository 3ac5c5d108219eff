// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/users/auth"
)

type envelope struct {
	Data  map[string]any `json:"data"`
	Error string         `json:"error"`
	Code  string         `json:"code"`
}

func serve(t *testing.T, handler http.Handler, method, path, body string) (int, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

/*
TestHandler_SignupAndToken drives both endpoints through the router.
*/
func TestHandler_SignupAndToken(t *testing.T) {
	f := newFixture(t)
	f.expectDelivery(nil)
	router := auth.NewHandler(f.service).Routes()

	status, body := serve(t, router, http.MethodPost, "/signup", `{"username":"ann","email":"ann@example.com"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ann", body.Data["username"])
	assert.Equal(t, "ann@example.com", body.Data["email"])

	payload, err := json.Marshal(map[string]string{"username": "ann", "confirmation_code": f.lastCode(t)})
	require.NoError(t, err)

	status, body = serve(t, router, http.MethodPost, "/token", string(payload))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "token:ann:user", body.Data["token"])
}

/*
TestHandler_Errors verifies malformed bodies and disallowed methods.
*/
func TestHandler_Errors(t *testing.T) {
	router := auth.NewHandler(newFixture(t).service).Routes()

	status, body := serve(t, router, http.MethodPost, "/signup", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	status, body = serve(t, router, http.MethodGet, "/token", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
}
