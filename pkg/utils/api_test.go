package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"double": in["n"] * 2})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL)
	var out struct {
		Double int `json:"double"`
	}
	require.NoError(t, api.PostJSON(context.Background(), "/", map[string]int{"n": 21}, &out))
	assert.Equal(t, 42, out.Double)
}

func TestAPIRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("body"))
	}))
	defer srv.Close()

	body, err := NewAPI(srv.URL).GetBytes(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "body", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAPIStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewAPI("http://unused.invalid").GetBytes(context.Background(), srv.URL+"/missing")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "GET", statusErr.Method)
}
