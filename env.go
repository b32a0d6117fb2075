package ndp_ep

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

const (
	EnvURL       = "NDP_EP_URL"
	EnvToken     = "NDP_EP_TOKEN"
	EnvUsername  = "NDP_EP_USERNAME"
	EnvPassword  = "NDP_EP_PASSWORD"
	EnvTimeout   = "NDP_EP_TIMEOUT"
	EnvSslVerify = "NDP_EP_SSL_VERIFY"
)

// ConfigFromEnv builds an EPConfig from NDP_EP_* environment variables after
// loading the given .env files (".env" when none are given). Missing files are
// skipped and variables already set in the environment take precedence.
// TLS verification is on unless NDP_EP_SSL_VERIFY says otherwise.
func ConfigFromEnv(files ...string) (*EPConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	config := &EPConfig{
		BaseURL:  os.Getenv(EnvURL),
		Token:    os.Getenv(EnvToken),
		Username: os.Getenv(EnvUsername),
		Password: os.Getenv(EnvPassword),
	}
	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &core.ValidationError{Field: EnvTimeout, Message: err.Error()}
		}
		config.Timeout = &timeout
	}
	if raw := strings.TrimSpace(os.Getenv(EnvSslVerify)); raw != "" {
		verify, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &core.ValidationError{Field: EnvSslVerify, Message: err.Error()}
		}
		config.InsecureSkipVerify = !verify
	}
	return config, nil
}
