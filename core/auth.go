package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type Authenticator interface {
	authorize(ctx context.Context, s *EPSession) error
	setAuthHeader(headers *http.Header)
	// Token returns the bearer token in use, or "" when none is held.
	Token() string
}

// createAuthenticator picks the authenticator for the given config.
// Priority: Token > Username/Password > none. WithAuth has already rejected ambiguous configs.
func createAuthenticator(config *EPConfig) Authenticator {
	switch {
	case config.Token != "":
		return &TokenAuthenticator{token: config.Token}
	case config.Username != "" && config.Password != "":
		return &PasswordAuthenticator{Username: config.Username, password: config.Password}
	default:
		return &NoAuthenticator{}
	}
}

// TokenAuthenticator attaches a caller-supplied bearer token. No network call is made.
type TokenAuthenticator struct {
	token string
}

func (auth *TokenAuthenticator) authorize(context.Context, *EPSession) error {
	return nil
}

func (auth *TokenAuthenticator) setAuthHeader(headers *http.Header) {
	headers.Set(HeaderAuthorization, AuthTypeBearer+" "+auth.token)
}

func (auth *TokenAuthenticator) Token() string {
	return auth.token
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// PasswordAuthenticator exchanges username/password for a bearer token once, at session creation.
// The token is never refreshed.
type PasswordAuthenticator struct {
	Username string
	password string
	token    string
}

func (auth *PasswordAuthenticator) authorize(ctx context.Context, s *EPSession) error {
	const operation = "authenticating"
	form := Params{"username": auth.Username, "password": auth.password}
	headers := []http.Header{{HeaderContentType: []string{ContentTypeFormURLEncoded}}}

	body, err := doRequest(WithOperation(ctx, operation), s, http.MethodPost, tokenPath, form, headers)
	if err != nil {
		var apiErr *ApiError
		if !errors.As(err, &apiErr) {
			return err
		}
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
			apiErr.Detail = "invalid username or password"
		default:
			apiErr.Detail = "login failed: " + apiErr.Detail
		}
		return apiErr
	}
	var parsed loginResponse
	if err = json.Unmarshal(body, &parsed); err != nil || parsed.AccessToken == "" {
		return &ApiError{
			Operation:  operation,
			Method:     http.MethodPost,
			URL:        s.config.BaseURL + tokenPath,
			StatusCode: http.StatusOK,
			Detail:     "no access token received",
			Body:       string(body),
		}
	}
	auth.token = parsed.AccessToken
	return nil
}

func (auth *PasswordAuthenticator) setAuthHeader(headers *http.Header) {
	if auth.token != "" {
		headers.Set(HeaderAuthorization, AuthTypeBearer+" "+auth.token)
	}
}

func (auth *PasswordAuthenticator) Token() string {
	return auth.token
}

// NoAuthenticator sends no Authorization header; the server decides what is allowed.
type NoAuthenticator struct{}

func (auth *NoAuthenticator) authorize(context.Context, *EPSession) error {
	return nil
}

func (auth *NoAuthenticator) setAuthHeader(*http.Header) {}

func (auth *NoAuthenticator) Token() string {
	return ""
}
