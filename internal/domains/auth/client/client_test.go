package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore-storefront/internal/domains/auth/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "right" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"AUTH_FAILED","message":"nope"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"access_token":"tok","user":{"id":"u-1","email":"a@example.com","full_name":"Ada Lovelace"}}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", time.Second)

	res, err := c.Login(context.Background(), model.LoginRequest{Email: "a@example.com", Password: "right"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, "Ada Lovelace", res.User.FullName)

	_, err = c.Login(context.Background(), model.LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestHTTPClient_LoginUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.Login(context.Background(), model.LoginRequest{Email: "a@example.com", Password: "x"})
	assert.ErrorIs(t, err, model.ErrAuthUnavailable)

	srv.Close()
	_, err = c.Login(context.Background(), model.LoginRequest{Email: "a@example.com", Password: "x"})
	assert.ErrorIs(t, err, model.ErrAuthUnavailable)
}
