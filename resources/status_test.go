package resources_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

const statusBody = `{"ckan_is_active_local":true,"ckan_is_active_global":false,"ckan_local_enabled":true,"keycloak_is_active":true,"version":"0.4.1"}`

func TestStatus_Get(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, statusBody)

	first, err := client.Status.Get()
	require.NoError(t, err)
	second, err := client.Status.Get()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, true, first["ckan_is_active_local"])

	req := rec.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/status", req.Path)
	assert.Len(t, rec.all(), 2)

	typed, err := client.Status.GetTyped()
	require.NoError(t, err)
	assert.True(t, typed.CkanIsActiveLocal)
	assert.False(t, typed.CkanIsActiveGlobal)
	assert.True(t, typed.KeycloakIsActive)
	assert.Equal(t, "0.4.1", typed.Version)
}

func TestStatus_Details(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status/metrics", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"public_ip":"1.2.3.4","cpu":"12%","memory":"40%","disk":"70%","services":{"ckan":"up"}}`))
	})
	mux.HandleFunc("/status/kafka", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"kafka_host":"kafka","kafka_port":9092,"kafka_prefix":"ndp_","max_streams":"10","kafka_connection":true}`))
	})
	mux.HandleFunc("/status/jupyter", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jupyter_url":"http://jupyter"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := newClientFor(t, server.URL)

	metrics, err := client.Status.Metrics()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", metrics.PublicIP)
	assert.Equal(t, "up", metrics.Services["ckan"])

	kafka, err := client.Status.KafkaDetails()
	require.NoError(t, err)
	assert.Equal(t, "9092", kafka.KafkaPort)
	assert.Equal(t, 10, kafka.MaxStreams)
	assert.True(t, kafka.KafkaConnection)

	jupyter, err := client.Status.JupyterDetails()
	require.NoError(t, err)
	assert.Equal(t, "http://jupyter", jupyter["jupyter_url"])
}

func TestStatus_Compatibility(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantVer    string
		incompat   bool
		versionErr bool
	}{
		{"current", statusBody, "0.4.1", false, false},
		{"old", `{"api_version":"0.1.0"}`, "0.1.0", true, false},
		{"missing", `{"ckan_is_active_local":true}`, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newClient(t, http.StatusOK, tt.body)

			v, err := client.Status.APIVersion()
			if tt.versionErr {
				assert.True(t, core.IsApiError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVer, v)

			err = client.Status.CheckCompatibility()
			var incompatible *core.VersionIncompatibleError
			assert.Equal(t, tt.incompat, errors.As(err, &incompatible))
		})
	}
}

func TestUser_Info(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `{"sub":"1","username":"jdoe","email":"j@x","roles":["admin"],"groups":[]}`)

	info, err := client.Users.InfoTyped()
	require.NoError(t, err)
	assert.Equal(t, "jdoe", info.Username)
	assert.Equal(t, []string{"admin"}, info.Roles)
	assert.Equal(t, "/user/info", rec.last(t).Path)
}

func TestUser_InfoErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   string
	}{
		{http.StatusUnauthorized, `{"detail":"Invalid token"}`, "not authenticated: Invalid token"},
		{http.StatusForbidden, `{}`, "forbidden"},
		{http.StatusBadGateway, `{"detail":"keycloak down"}`, "authentication service unavailable: keycloak down"},
		{http.StatusInternalServerError, `{"detail":"internal error"}`, "internal error"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newClient(t, tt.status, tt.body)
			_, err := client.Users.Info()
			require.Error(t, err)
			assert.True(t, core.IsApiError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
