package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mademanik/minjeminapp/repository/rest"
)

func TestDo_RejectsEmptyToken(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	c := rest.New(srv.URL)
	err := c.Do(context.Background(), "  ", http.MethodGet, "/items", nil, nil)
	require.ErrorIs(t, err, rest.ErrNoToken)
	require.False(t, hit, "no request may leave the client without a token")
}

func TestDo_SendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		require.Equal(t, "/items/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"Tent"}`))
	}))
	defer srv.Close()

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	c := rest.New(srv.URL)
	require.NoError(t, c.Do(context.Background(), "abc123", http.MethodGet, "/items/7", nil, &out))
	require.Equal(t, int64(7), out.ID)
	require.Equal(t, "Tent", out.Name)
}

func TestDo_ExtractsUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"item is already rented"}`))
	}))
	defer srv.Close()

	c := rest.New(srv.URL)
	err := c.Do(context.Background(), "abc123", http.MethodDelete, "/items/7", nil, nil)

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "item is already rented", apiErr.Error())
}

func TestDo_OpaqueErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("nginx says no"))
	}))
	defer srv.Close()

	c := rest.New(srv.URL)
	err := c.Do(context.Background(), "abc123", http.MethodGet, "/items", nil, nil)

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, "upstream error (502)", apiErr.Error())
}

func TestDo_EncodesRequestBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "Tent", in["name"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := rest.New(srv.URL)
	in := map[string]string{"name": "Tent"}
	require.NoError(t, c.Do(context.Background(), "abc123", http.MethodPost, "/items", in, nil))
}
