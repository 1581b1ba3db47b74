package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/ocsf-mcp/internal/codegen"
	"github.com/telhawk-systems/ocsf-mcp/internal/handlers"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/middleware"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
	"github.com/telhawk-systems/ocsf-mcp/internal/server"
	"github.com/telhawk-systems/ocsf-mcp/internal/service"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
)

func newTestServer(t *testing.T, verifier *middleware.TokenVerifier) *httptest.Server {
	t.Helper()
	gen, err := codegen.New()
	require.NoError(t, err)
	svc := service.NewToolService(schema.NewEmbeddedRepository(logging.Nop()), gen, logging.Nop())
	h := handlers.NewToolHandler(tools.NewDispatcher(svc, logging.Nop()), svc, logging.Nop(), 1<<20)

	srv := httptest.NewServer(server.NewRouter(h, server.Options{Logger: logging.Nop(), Verifier: verifier}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew(t *testing.T) {
	c := New("http://localhost:8090/", "tok")

	assert.Equal(t, "http://localhost:8090", c.baseURL)
	assert.Equal(t, "tok", c.token)
	assert.Equal(t, 30*time.Second, c.client.Timeout)
}

func TestClient_Health(t *testing.T) {
	srv := newTestServer(t, nil)

	health, err := New(srv.URL, "").Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.NotEmpty(t, health.Versions)
}

func TestClient_ListTools(t *testing.T) {
	srv := newTestServer(t, nil)

	defs, err := New(srv.URL, "").ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 9)
	assert.Equal(t, tools.BrowseSchema, defs[0].Name)
}

func TestClient_CallJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	var versions models.VersionsResponse
	err := New(srv.URL, "").CallJSON(context.Background(), tools.ListVersions, nil, &versions)
	require.NoError(t, err)
	assert.Equal(t, 8, versions.Count)
}

func TestClient_CallToolError(t *testing.T) {
	srv := newTestServer(t, nil)

	_, err := New(srv.URL, "").Call(context.Background(), tools.ReadDocs, models.ReadDocsRequest{Topic: "nope"})
	require.Error(t, err)

	var te *tools.ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, tools.KindUnknownTopic, te.Kind)
	assert.Equal(t, "read_docs_error", te.Code)
}

func TestClient_BearerToken(t *testing.T) {
	verifier := middleware.NewTokenVerifier("test-secret")
	srv := newTestServer(t, verifier)

	_, err := New(srv.URL, "").ListTools(context.Background())
	require.Error(t, err)
	var te *tools.ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "unauthorized", te.Code)

	token, err := verifier.Sign(jwt.RegisteredClaims{
		Subject:   "ci",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	defs, err := New(srv.URL, token).ListTools(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, defs)
}

func TestClient_StatusErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Call(context.Background(), tools.ListVersions, json.RawMessage(`{}`))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "bad gateway", se.Body)
}

func TestClient_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Call(context.Background(), tools.ListVersions, nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
