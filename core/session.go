package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type contextKey string

const (
	operationKey contextKey = "@operation" // human-readable operation name used in error messages
)

type RESTSession interface {
	Get(context.Context, string, Params, []http.Header) ([]byte, error)
	Post(context.Context, string, Params, []http.Header) ([]byte, error)
	Put(context.Context, string, Params, []http.Header) ([]byte, error)
	Patch(context.Context, string, Params, []http.Header) ([]byte, error)
	Delete(context.Context, string, Params, []http.Header) ([]byte, error)
	GetConfig() *EPConfig
	GetAuthenticator() Authenticator
}

// WithOperation attaches the operation name that errors produced by the request will carry.
func WithOperation(ctx context.Context, operation string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, operationKey, operation)
}

func operationFromContext(ctx context.Context, verb, url string) string {
	if op, ok := ctx.Value(operationKey).(string); ok && op != "" {
		return op
	}
	return fmt.Sprintf("%s %s", verb, url)
}

type EPSession struct {
	config *EPConfig
	client *http.Client
	auth   Authenticator
}

type EPSessionMethod func(context.Context, string, Params, []http.Header) ([]byte, error)

// NewEPSession validates the config, builds the HTTP client and authenticates.
// With username/password this performs the one login exchange; with no credentials
// and CheckAvailability set, it probes the base URL.
func NewEPSession(config *EPConfig) (*EPSession, error) {
	if config == nil {
		return nil, &ValidationError{Field: "config", Message: "cannot be nil"}
	}
	if err := config.Validate(DefaultValidators()...); err != nil {
		return nil, err
	}
	session := &EPSession{
		config: config,
		client: newHTTPClient(config),
		auth:   createAuthenticator(config),
	}
	if err := session.auth.authorize(config.Context, session); err != nil {
		return nil, err
	}
	if _, isNoAuth := session.auth.(*NoAuthenticator); isNoAuth && config.CheckAvailability {
		if err := session.ping(config.Context); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func newHTTPClient(config *EPConfig) *http.Client {
	if config.HTTPClient != nil {
		client := *config.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = *config.Timeout
		}
		return &client
	}
	transport := cleanhttp.DefaultPooledTransport()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: config.InsecureSkipVerify}
	return &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   *config.Timeout,
	}
}

// ping checks that the base URL answers with a 2xx status.
func (s *EPSession) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set(HeaderUserAgent, s.config.UserAgent)
	response, err := s.client.Do(req)
	if err != nil {
		return &TransportError{Operation: "connecting to API", Method: http.MethodGet, URL: s.config.BaseURL, Err: err}
	}
	defer response.Body.Close()
	_, err = validateResponse(response, "connecting to API")
	return err
}

// Request performs a call on behalf of a resource and decodes the 2xx body into T.
//
// Parameters:
//   - operation: name used in error messages, e.g. "registering organization".
//   - path: escaped path relative to the base URL (see JoinPath).
//   - query: nil, Params, url.Values or a struct with `url` tags.
//   - body: JSON body, or nil.
func Request[T any](
	ctx context.Context,
	r EPResourceAPI,
	operation, verb, path string,
	query any,
	body Params,
) (T, error) {
	return RequestWithHeaders[T](ctx, r, operation, verb, path, query, body, nil)
}

func RequestWithHeaders[T any](
	ctx context.Context,
	r EPResourceAPI,
	operation, verb, path string,
	query any,
	body Params,
	headers []http.Header,
) (T, error) {
	var zero T
	if ctx == nil {
		ctx = r.Ctx()
	}
	ctx = WithOperation(ctx, operation)
	raw, url, err := RequestRaw(ctx, r, verb, path, query, body, headers)
	if err != nil {
		return zero, err
	}
	result, err := decodeBody[T](raw)
	if err != nil {
		return zero, &ApiError{
			Operation: operation,
			Method:    strings.ToUpper(verb),
			URL:       url,
			Detail:    "invalid response format",
			Body:      string(raw),
		}
	}
	return doAfterRequest(ctx, r.Session(), result)
}

// RequestRaw performs a call and returns the undecoded 2xx body together with the final URL.
func RequestRaw(
	ctx context.Context,
	r EPResourceAPI,
	verb, path string,
	query any,
	body Params,
	headers []http.Header,
) ([]byte, string, error) {
	var method EPSessionMethod
	if ctx == nil {
		ctx = r.Ctx()
	}
	verb = strings.ToUpper(verb)
	session := r.Session()

	switch verb {
	case http.MethodGet:
		method = session.Get
	case http.MethodPost:
		method = session.Post
	case http.MethodPut:
		method = session.Put
	case http.MethodPatch:
		method = session.Patch
	case http.MethodDelete:
		method = session.Delete
	default:
		return nil, "", fmt.Errorf("unknown verb: %s", verb)
	}
	encoded, err := EncodeQuery(query)
	if err != nil {
		return nil, "", &ValidationError{Field: "query", Message: err.Error()}
	}
	url, err := buildUrl(session, path, encoded)
	if err != nil {
		return nil, "", err
	}
	response, err := method(ctx, url, body, headers)
	return response, url, err
}

func (s *EPSession) Get(ctx context.Context, url string, _ Params, headers []http.Header) ([]byte, error) {
	return doRequest(ctx, s, http.MethodGet, url, nil, headers)
}

func (s *EPSession) Post(ctx context.Context, url string, body Params, headers []http.Header) ([]byte, error) {
	return doRequest(ctx, s, http.MethodPost, url, body, headers)
}

func (s *EPSession) Put(ctx context.Context, url string, body Params, headers []http.Header) ([]byte, error) {
	return doRequest(ctx, s, http.MethodPut, url, body, headers)
}

func (s *EPSession) Patch(ctx context.Context, url string, body Params, headers []http.Header) ([]byte, error) {
	return doRequest(ctx, s, http.MethodPatch, url, body, headers)
}

func (s *EPSession) Delete(ctx context.Context, url string, body Params, headers []http.Header) ([]byte, error) {
	return doRequest(ctx, s, http.MethodDelete, url, body, headers)
}

func (s *EPSession) GetConfig() *EPConfig {
	return s.config
}

func (s *EPSession) GetAuthenticator() Authenticator {
	return s.auth
}

func consolidateHeaders(s RESTSession, customHeaders []http.Header) http.Header {
	finalHeaders := make(http.Header)

	for _, header := range customHeaders {
		for key, values := range header {
			for _, value := range values {
				finalHeaders.Add(key, value)
			}
		}
	}
	if finalHeaders.Get(HeaderAccept) == "" {
		finalHeaders.Set(HeaderAccept, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderContentType) == "" {
		finalHeaders.Set(HeaderContentType, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderUserAgent) == "" {
		finalHeaders.Set(HeaderUserAgent, s.GetConfig().UserAgent)
	}
	if finalHeaders.Get(HeaderRequestID) == "" {
		finalHeaders.Set(HeaderRequestID, uuid.NewString())
	}
	return finalHeaders
}

func setupHeaders(s RESTSession, r *http.Request, headers http.Header) {
	s.GetAuthenticator().setAuthHeader(&r.Header)
	for key, values := range headers {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}
}

// encodeBody serializes body according to the Content-Type header, updating it
// with the multipart boundary when needed. It returns a second copy for interceptors.
func encodeBody(body Params, headers http.Header) (io.Reader, []byte, error) {
	if body == nil {
		return nil, nil, nil
	}
	var (
		data io.Reader
		err  error
	)
	contentType := strings.ToLower(headers.Get(HeaderContentType))
	switch {
	case strings.Contains(contentType, ContentTypeMultipartForm):
		multipartData, mErr := body.ToMultipartFormData()
		if mErr != nil {
			return nil, nil, fmt.Errorf("failed to create multipart form data: %w", mErr)
		}
		headers.Set(HeaderContentType, multipartData.ContentType)
		data = multipartData.Body
	case strings.Contains(contentType, ContentTypeFormURLEncoded):
		data, err = body.ToForm()
	default:
		data, err = body.ToBody()
	}
	if err != nil {
		return nil, nil, err
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, nil, err
	}
	return bytes.NewReader(buf), buf, nil
}

// doRequest creates, sends and validates a single HTTP request. There are no retries.
func doRequest(ctx context.Context, s *EPSession, verb, url string, body Params, headers []http.Header) ([]byte, error) {
	var err error
	if ctx == nil {
		ctx = s.config.Context
	}
	if url, err = pathToUrl(s, url); err != nil {
		return nil, err
	}
	operation := operationFromContext(ctx, verb, url)

	finalHeaders := consolidateHeaders(s, headers)
	requestData, rawBody, err := encodeBody(body, finalHeaders)
	if err != nil {
		return nil, err
	}
	if requestData == nil {
		requestData = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, verb, url, requestData)
	if err != nil {
		return nil, err
	}
	setupHeaders(s, req, finalHeaders)

	if err = doBeforeRequest(ctx, s, req, verb, url, rawBody); err != nil {
		return nil, err
	}
	started := time.Now()
	response, responseErr := s.client.Do(req)
	if responseErr != nil {
		return nil, &TransportError{Operation: operation, Method: verb, URL: url, Err: responseErr}
	}
	defer response.Body.Close()

	result, err := validateResponse(response, operation)
	afterResponseLog(s.config.Logger, req, response, time.Since(started), result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
