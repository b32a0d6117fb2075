package ndp_ep

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvURL, EnvToken, EnvUsername, EnvPassword, EnvTimeout, EnvSslVerify} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "ep.env")
	content := "NDP_EP_URL=http://ep.example.org:8002\nNDP_EP_TOKEN=abc\nNDP_EP_TIMEOUT=5s\nNDP_EP_SSL_VERIFY=false\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := ConfigFromEnv(file, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if config.BaseURL != "http://ep.example.org:8002" || config.Token != "abc" {
		t.Errorf("unexpected config %+v", config)
	}
	if config.Timeout == nil || *config.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", config.Timeout)
	}
	if !config.InsecureSkipVerify {
		t.Error("NDP_EP_SSL_VERIFY=false not applied")
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvURL, "localhost:8002")

	config, err := ConfigFromEnv(filepath.Join(t.TempDir(), "none.env"))
	if err != nil {
		t.Fatal(err)
	}
	if config.InsecureSkipVerify || config.Timeout != nil {
		t.Errorf("defaults not applied: %+v", config)
	}
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvTimeout, "soon"},
		{EnvSslVerify, "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := ConfigFromEnv(filepath.Join(t.TempDir(), "none.env"))
			if !core.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
