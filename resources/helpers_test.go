package resources_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/national-data-platform/ndp-ep-go-client/core"
	"github.com/national-data-platform/ndp-ep-go-client/rest"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into a generic map.
func (r recordedRequest) JSON(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &out))
	return out
}

type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (rec *recorder) add(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.requests = append(rec.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
}

func (rec *recorder) all() []recordedRequest {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]recordedRequest(nil), rec.requests...)
}

func (rec *recorder) last(t *testing.T) recordedRequest {
	t.Helper()
	all := rec.all()
	require.NotEmpty(t, all, "no request reached the server")
	return all[len(all)-1]
}

// newClient starts a test server that records every request and answers with
// the given status and body, and returns a token-authenticated client for it.
func newClient(t *testing.T, status int, body string) (*rest.EPRest, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return newClientFor(t, server.URL), rec
}

func newClientFor(t *testing.T, baseURL string) *rest.EPRest {
	t.Helper()
	client, err := rest.NewEPRest(&core.EPConfig{BaseURL: baseURL, Token: "secret-token"})
	require.NoError(t, err)
	return client
}

func ptr[T any](v T) *T {
	return &v
}
