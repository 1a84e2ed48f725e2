package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	e := newTestServer(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing password", map[string]any{"username": "alice"}},
		{"missing username", map[string]any{"password": "secret1"}},
		{"short username", map[string]any{"username": "ab", "password": "secret1"}},
		{"short password", map[string]any{"username": "alice", "password": "12345"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestRegisterLoginProtectedFlow(t *testing.T) {
	e := newTestServer(t)
	creds := map[string]any{"username": "abc", "password": "secret1"}

	rec := doJSON(e, http.MethodPost, "/api/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["username"])
	assert.NotNil(t, body["user_id"])

	rec = doJSON(e, http.MethodPost, "/api/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "abc", body["username"])

	rec = doJSON(e, http.MethodGet, "/api/protected", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "abc", body["current_user"])

	rec = doJSON(e, http.MethodGet, "/api/protected", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/protected", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	e := newTestServer(t)
	creds := map[string]any{"username": "dupuser", "password": "secret1"}

	rec := doJSON(e, http.MethodPost, "/api/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username already exists", decode(t, rec)["message"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newTestServer(t)
	_ = registerAndLogin(t, e, "carol")

	rec := doJSON(e, http.MethodPost, "/api/login",
		"", map[string]any{"username": "carol", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = doJSON(e, http.MethodPost, "/api/login",
		"", map[string]any{"username": "nosuchuser", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/login",
		"", map[string]any{"username": "carol"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasswordHashNeverReturned(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/api/register",
		"", map[string]any{"username": "dave", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUnknownEndpointEnvelope(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "endpoint not found", body["message"])
}
