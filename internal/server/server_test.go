package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"minipm/internal/config"
	"minipm/internal/store"
	"minipm/internal/types"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.CreateOrganization(context.Background(),
		&types.Organization{Name: "Test Org", Slug: "test-org"}))

	cfg := config.DefaultConfig()
	cfg.Server.ShutdownTimeout = "2s"
	srv, err := New(cfg, st)
	require.NoError(t, err)
	srv.now = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }
	return srv, st
}

func postGraphQL(t *testing.T, srv *Server, org, query string, vars map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": vars})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if org != "" {
		req.Header.Set("X-Organization", org)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/health/", "/ping/"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t,
			`{"status":"ok","timestamp":"2026-04-01T12:00:00Z","service":"mini-pm-system"}`,
			w.Body.String())
	}
}

func TestGraphQL_CreateAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	w := postGraphQL(t, srv, "test-org",
		`mutation { createProject(name: "Website") { success message project { id name } } }`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-org", w.Header().Get("X-Current-Organization"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var created struct {
		Data struct {
			CreateProject struct {
				Success bool
				Message string
			}
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Data.CreateProject.Success)
	assert.Equal(t, "Project created", created.Data.CreateProject.Message)

	w = postGraphQL(t, srv, "Test Org", `{ projects { name } }`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"projects":[{"name":"Website"}]}}`, w.Body.String())
}

func TestGraphQL_UnknownOrganization(t *testing.T) {
	srv, _ := newTestServer(t)
	w := postGraphQL(t, srv, "nobody", `{ projects { id } }`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t,
		`{"error":"Organization not found","message":"No organization found with identifier: nobody"}`,
		w.Body.String())
}

func TestGraphQL_AmbiguousOrganization(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, st.CreateOrganization(ctx, &types.Organization{Name: "Twin", Slug: "twin-a"}))
	require.NoError(t, st.CreateOrganization(ctx, &types.Organization{Name: "Twin", Slug: "twin-b"}))

	w := postGraphQL(t, srv, "Twin", `{ projects { id } }`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Multiple organizations found with identifier: Twin")
}

func TestGraphQL_NoHeaderIsEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	w := postGraphQL(t, srv, "", `{ projects { id } organization { id } }`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"projects":[],"organization":null}}`, w.Body.String())
}

func TestRequestID_Propagated(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/graphql/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-organization")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Organization")
}

func TestCORSConfig(t *testing.T) {
	_, ok := corsConfig(nil)
	assert.False(t, ok)

	c, ok := corsConfig([]string{"*"})
	require.True(t, ok)
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)
}

func TestGraphiQL_OnBrowserGet(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/graphql/", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graphiql")
}

func TestServe_GracefulShutdown(t *testing.T) {
	srv, _ := newTestServer(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/ping/")
	require.NoError(t, err)
	resp.Body.Close()
	client.CloseIdleConnections()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
