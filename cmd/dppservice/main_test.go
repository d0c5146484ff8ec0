//go:build unit

package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpp40/dpp-go-components/internal/common"
)

func TestConfigDefaults(t *testing.T) {
	config, err := common.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5010, config.Server.Port)
	assert.Equal(t, "/api/v1/dpp", config.Server.ContextPath)
	assert.Equal(t, "memory", config.Repository.Backend)
	assert.False(t, config.Repository.UniqueIdShort)
	assert.False(t, config.Auth.Enabled)
}

func TestHealthEndpoint(t *testing.T) {
	config, err := common.LoadConfig("")
	require.NoError(t, err)
	config.Server.ContextPath = common.NormalizeBasePath(config.Server.ContextPath)

	r := chi.NewRouter()
	common.AddHealthEndpoint(r, config)

	server := httptest.NewServer(r)
	defer server.Close()

	resp, err := http.Get(server.URL + config.Server.ContextPath + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"UP"}`, string(body))
}

func TestEmbeddedOpenAPISpec(t *testing.T) {
	content, err := openAPISpec.ReadFile("api/openapi.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(content), "DPP Shell Service")
}
