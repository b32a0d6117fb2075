package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EPConfig represents the configuration required to create an EP session.
type EPConfig struct {
	BaseURL  string         // Base URL of the EP API, e.g. "http://localhost:8002". "http://" is prepended when no scheme is given.
	Token    string         // Optional bearer token. Mutually exclusive with Username/Password.
	Username string         // Username for the login exchange performed at construction.
	Password string         // Password for the login exchange performed at construction.
	Timeout  *time.Duration // Per-request timeout. If nil, a default is applied by validators.

	InsecureSkipVerify bool   // Accept any TLS certificate. Certificates are verified by default.
	UserAgent          string // Optional custom User-Agent header. If empty, a default is applied.

	// CheckAvailability issues a GET against the base URL during construction
	// when no credentials are configured, failing early if the API is unreachable.
	CheckAvailability bool

	// Context is an optional parent context for requests made through the
	// methods that do not take a context explicitly.
	Context context.Context

	// Logger receives request/response logs. If nil, one is built from the
	// NDP_EP_LOG environment variable ("debug" or "info"), otherwise logging is disabled.
	Logger *zap.Logger

	// HTTPClient optionally replaces the HTTP client built by the session.
	// Timeout is applied to it only when it has none.
	HTTPClient *http.Client

	// BeforeRequestFn is an optional hook executed before a request is sent.
	// Returning an error aborts the request.
	//
	// Parameters:
	//   - ctx: The request context.
	//   - r: Request object (headers may be mutated).
	//   - verb: The HTTP method.
	//   - url: The full request URL including the query string.
	//   - body: The request body, if any.
	BeforeRequestFn func(ctx context.Context, r *http.Request, verb, url string, body io.Reader) error

	// AfterRequestFn is an optional hook executed after a successful response
	// has been decoded. It can transform the decoded value.
	AfterRequestFn func(ctx context.Context, response any) (any, error)
}

// EPConfigFunc defines a function that can modify or validate an EPConfig.
type EPConfigFunc func(*EPConfig) error

// Validate applies the given validators in order and returns the first error.
func (config *EPConfig) Validate(validators ...EPConfigFunc) error {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			return err
		}
	}
	return nil
}

// WithBaseURL validates the base URL, adds a missing scheme and trims trailing slashes.
func WithBaseURL(config *EPConfig) error {
	raw := strings.TrimSpace(config.BaseURL)
	if raw == "" {
		return &ValidationError{Field: "base_url", Message: "cannot be empty"}
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: "base_url", Message: err.Error()}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "base_url", Message: fmt.Sprintf("no host in %q", config.BaseURL)}
	}
	config.BaseURL = strings.TrimRight(raw, "/")
	return nil
}

// WithTimeout returns an EPConfigFunc that sets a default timeout if none is provided.
func WithTimeout(timeout time.Duration) EPConfigFunc {
	return func(config *EPConfig) error {
		if config.Timeout == nil {
			config.Timeout = &timeout
		}
		if *config.Timeout <= 0 {
			return &ValidationError{Field: "timeout", Message: "must be positive"}
		}
		return nil
	}
}

// WithAuth checks that at most one authentication mode is configured.
// Having no credentials at all is allowed: the server then decides.
func WithAuth(config *EPConfig) error {
	hasToken := config.Token != ""
	hasUser := config.Username != "" || config.Password != ""
	if hasToken && hasUser {
		return &ValidationError{Field: "token", Message: "provide either a token or username/password, not both"}
	}
	if hasUser && (config.Username == "" || config.Password == "") {
		return &ValidationError{Field: "password", Message: "username and password must be provided together"}
	}
	return nil
}

// WithUserAgent sets a default User-Agent header if none is provided in the config.
func WithUserAgent(config *EPConfig) error {
	if config.UserAgent == "" {
		config.UserAgent = fmt.Sprintf(
			"%s-%s,os:%s,arch:%s",
			defaultUserAgent,
			ClientVersion(),
			runtime.GOOS,
			runtime.GOARCH,
		)
	}
	return nil
}

// WithContext sets context.Background() as the parent context when none is provided.
func WithContext(config *EPConfig) error {
	if config.Context == nil {
		config.Context = context.Background()
	}
	return nil
}

// WithLogger installs a logger derived from NDP_EP_LOG when none is provided.
func WithLogger(config *EPConfig) error {
	if config.Logger != nil {
		return nil
	}
	logger, err := loggerFromLevel(os.Getenv(EnvLogLevel))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	config.Logger = logger
	return nil
}

func loggerFromLevel(level string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.NewDevelopment()
	case "info":
		cfg := zap.NewProductionConfig()
		cfg.Sampling = nil
		return cfg.Build()
	default:
		return zap.NewNop(), nil
	}
}

// DefaultValidators is the validator chain applied by NewEPSession.
func DefaultValidators() []EPConfigFunc {
	return []EPConfigFunc{
		WithBaseURL,
		WithAuth,
		WithTimeout(30 * time.Second),
		WithUserAgent,
		WithContext,
		WithLogger,
	}
}
