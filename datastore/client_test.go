package datastore_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-onboarding-server/datastore"
	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

func newTestServer(t *testing.T, status int, reply string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body := map[string]any{}
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &body))
		}
		captured = append(captured, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestClient_Update(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusNoContent, "")
	client := datastore.NewFactory(srv.URL+"/", "anon-key").Create("access-1")

	err := client.Update(context.Background(), "users", map[string]any{"name": "Ana", "onboarded": true}, datastore.Match{Column: "id", Value: "u1"})
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	got := (*captured)[0]
	require.Equal(t, http.MethodPatch, got.Method)
	require.Equal(t, "/rest/v1/users", got.Path)
	require.Equal(t, "id=eq.u1", got.Query)
	require.Equal(t, "Bearer access-1", got.Header.Get("Authorization"))
	require.Equal(t, "anon-key", got.Header.Get("apikey"))
	require.Equal(t, "return=minimal", got.Header.Get("Prefer"))
	require.Equal(t, map[string]any{"name": "Ana", "onboarded": true}, got.Body)
}

func TestFactory_CreateBuildsFreshClients(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusNoContent, "")
	factory := datastore.NewFactory(srv.URL, "anon-key")

	match := datastore.Match{Column: "id", Value: "u1"}
	require.NoError(t, factory.Create("first").Update(context.Background(), "users", map[string]any{}, match))
	require.NoError(t, factory.Create("second").Update(context.Background(), "users", map[string]any{}, match))

	require.Len(t, *captured, 2)
	require.Equal(t, "Bearer first", (*captured)[0].Header.Get("Authorization"))
	require.Equal(t, "Bearer second", (*captured)[1].Header.Get("Authorization"))
}

func TestClient_UpdateWithoutTokenReachesRemote(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusUnauthorized, `{"code":"PGRST301","message":"JWT is invalid"}`)
	client := datastore.NewFactory(srv.URL, "anon-key").Create("")

	err := client.Update(context.Background(), "users", map[string]any{"email": "a@b.co"}, datastore.Match{Column: "id", Value: "u1"})
	require.Error(t, err)
	require.Len(t, *captured, 1)

	var apiErr *datastore.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "PGRST301", apiErr.Code)
	require.Equal(t, "JWT is invalid", apiErr.Message)
	require.ErrorIs(t, err, errors.ErrMutationFailed)
}

func TestClient_UpdateNonJSONError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadGateway, "upstream down")
	client := datastore.NewFactory(srv.URL, "").Create("access-1")

	err := client.Update(context.Background(), "users", map[string]any{}, datastore.Match{Column: "id", Value: "u1"})
	var apiErr *datastore.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "upstream down", apiErr.Message)
}

func TestClient_UpdateRequiresTableAndMatch(t *testing.T) {
	client := datastore.NewFactory("http://127.0.0.1:0", "").Create("access-1")
	err := client.Update(context.Background(), "", map[string]any{}, datastore.Match{})
	require.ErrorIs(t, err, errors.ErrInvalidRequest)
}

func TestFactory_WithTransport(t *testing.T) {
	var authHeader, apiKey string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		apiKey = r.Header.Get("apikey")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	// The TLS test server is only trusted by its own client transport.
	client := datastore.NewFactory(srv.URL, "anon-key", datastore.WithTransport(srv.Client().Transport)).Create("access-1")
	err := client.Update(context.Background(), "users", map[string]any{"onboarded": true}, datastore.Match{Column: "id", Value: "u1"})
	require.NoError(t, err)
	require.Equal(t, "Bearer access-1", authHeader)
	require.Equal(t, "anon-key", apiKey)
}
