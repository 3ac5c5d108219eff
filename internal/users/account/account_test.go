// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

func seed() *authtest.Users {
	return authtest.NewUsers(
		&auth.User{Username: "ann", Email: "ann@example.com", Role: sec.RoleUser},
		&auth.User{Username: "root", Email: "root@example.com", Role: sec.RoleAdmin},
		&auth.User{Username: "annabel", Email: "annabel@example.com", Role: sec.RoleModerator},
	)
}

func claimsFor(users *authtest.Users, username string) *sec.AuthClaims {
	user, err := users.FindByUsername(context.Background(), username)
	if err != nil {
		return nil
	}
	return &sec.AuthClaims{UserID: user.ID, Username: user.Username, Role: string(user.EffectiveRole())}
}

// newRouter mounts the routes the way the server does, with claims injected.
func newRouter(users *authtest.Users, claims *sec.AuthClaims) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/users", account.NewHandler(account.NewService(users)).Routes())
	return router
}

func do(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))

	decoded := map[string]any{}
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

// # Service

/*
TestService_Create verifies defaults, field rules and uniqueness.
*/
func TestService_Create(t *testing.T) {
	service := account.NewService(seed())

	user, err := service.Create(context.Background(), account.CreateInput{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)

	_, err = service.Create(context.Background(), account.CreateInput{Username: "carl", Email: "carl@example.com", Role: "owner"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(context.Background(), account.CreateInput{Username: "ann", Email: "ann2@example.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(context.Background(), account.CreateInput{Username: "ME", Email: "me@example.com"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestService_UpdateEmailBumpsVersion verifies that a changed address
invalidates outstanding confirmation codes.
*/
func TestService_UpdateEmailBumpsVersion(t *testing.T) {
	users := seed()
	service := account.NewService(users)

	user, err := service.Update(context.Background(), "ann", account.UpdateInput{Bio: pointer.To("hello")})
	require.NoError(t, err)
	assert.Zero(t, user.TokenVersion)
	assert.Equal(t, "hello", user.Bio)

	user, err = service.Update(context.Background(), "ann", account.UpdateInput{Email: pointer.To("ann@new.example.com")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.TokenVersion)
	assert.Equal(t, int64(1), users.Get(user.ID).TokenVersion)

	_, err = service.Update(context.Background(), "ann", account.UpdateInput{Email: pointer.To("root@example.com")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

// redeemingUsers consumes the account's code right after it is read, as a
// concurrent token exchange would.
type redeemingUsers struct {
	*authtest.Users
}

func (users redeemingUsers) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	user, err := users.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if _, err := users.ConsumeTokenVersion(ctx, user.ID, user.TokenVersion); err != nil {
		return nil, err
	}
	return user, nil
}

/*
TestService_UpdateKeepsRedeemedVersion verifies that a profile update does
not roll back a version consumed after the account was read.
*/
func TestService_UpdateKeepsRedeemedVersion(t *testing.T) {
	users := seed()
	service := account.NewService(redeemingUsers{users})

	user, err := service.Update(context.Background(), "ann", account.UpdateInput{Bio: pointer.To("hello")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.TokenVersion)
	assert.Equal(t, int64(1), users.Get(user.ID).TokenVersion)

	user, err = service.Update(context.Background(), "ann", account.UpdateInput{Email: pointer.To("ann@new.example.com")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), users.Get(user.ID).TokenVersion, "redeemed once more, then bumped by the e-mail change")
	assert.Equal(t, int64(3), user.TokenVersion)
}

/*
TestService_UpdateMeIgnoresRole verifies that self-service cannot escalate.
*/
func TestService_UpdateMeIgnoresRole(t *testing.T) {
	users := seed()
	service := account.NewService(users)
	ann := claimsFor(users, "ann")

	user, err := service.UpdateMe(context.Background(), ann.UserID, account.UpdateInput{
		Role:      pointer.To("admin"),
		FirstName: pointer.To("Ann"),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, "Ann", user.FirstName)
}

// # HTTP

/*
TestRoutes_AdminOnly verifies the directory is closed to non-admins.
*/
func TestRoutes_AdminOnly(t *testing.T) {
	users := seed()

	recorder, _ := do(t, newRouter(users, nil), http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, _ = do(t, newRouter(users, claimsFor(users, "annabel")), http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	admin := newRouter(users, claimsFor(users, "root"))

	recorder, body := do(t, admin, http.MethodGet, "/users?search=ANN&limit=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["count"])
	assert.NotNil(t, meta["next"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "ann", data[0].(map[string]any)["username"])

	recorder, body = do(t, admin, http.MethodPost, "/users", `{"username":"bob","email":"bob@example.com","role":"moderator"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "moderator", body["data"].(map[string]any)["role"])

	recorder, body = do(t, admin, http.MethodPatch, "/users/bob", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "admin", body["data"].(map[string]any)["role"])

	recorder, _ = do(t, admin, http.MethodPut, "/users/bob", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	recorder, _ = do(t, admin, http.MethodDelete, "/users/bob", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, _ = do(t, admin, http.MethodGet, "/users/bob", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestRoutes_Me verifies self-service reads, role protection and the methods
that are not offered.
*/
func TestRoutes_Me(t *testing.T) {
	users := seed()
	router := newRouter(users, claimsFor(users, "ann"))

	recorder, body := do(t, router, http.MethodGet, "/users/me", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ann", body["data"].(map[string]any)["username"])
	assert.NotContains(t, body["data"], "id")

	recorder, body = do(t, router, http.MethodPatch, "/users/me", `{"role":"admin","bio":"hi"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user", body["data"].(map[string]any)["role"])
	assert.Equal(t, "hi", body["data"].(map[string]any)["bio"])

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		recorder, body = do(t, router, method, "/users/me", `{}`)
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code, method)
		assert.Equal(t, apperr.CodeMethodNotAllowed, body["code"], method)
	}

	recorder, _ = do(t, newRouter(users, nil), http.MethodGet, "/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
