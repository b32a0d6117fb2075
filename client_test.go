package ndp_ep

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

func TestNewEPRest_WiresAllGroups(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "token_type": "bearer"})
		case "/organization":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode([]string{"a", "b"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := NewEPRest(&EPConfig{BaseURL: server.URL, Username: "u", Password: "p"})
	require.NoError(t, err)

	orgs, err := client.Organizations.List("", ServerGlobal)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, orgs)
	assert.Equal(t, []string{"POST /token", "GET /organization"}, calls)

	for _, name := range []string{
		"Organization", "URLResource", "S3Resource", "KafkaTopic", "Service", "Dataset",
		"Resource", "Search", "Status", "User", "S3Bucket", "S3Object", "Pelican", "OpenAPI",
	} {
		assert.Contains(t, client.GetResourceMap(), name)
	}
	assert.NotNil(t, client.GetCtx())
}

func TestNewEPRest_LoginFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))
	defer server.Close()

	client, err := NewEPRest(&EPConfig{BaseURL: server.URL, Username: "u", Password: "bad"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, core.IsApiError(err))
	assert.Contains(t, err.Error(), "invalid username or password")
	assert.Equal(t, 1, calls)
}
