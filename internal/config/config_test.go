package config

import (
	"strings"
	"testing"
	"time"
)

const minimalConfig = `
server:
  external_url: https://gems.example.com/
threads:
  client_secret: shh
`

func TestParseConfigAppliesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(minimalConfig))
	if err != nil {
		t.Fatalf("ParseConfig() unexpected error = %v", err)
	}

	if cfg.Server.Port != DefaultServerConfig.Port {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultServerConfig.Port)
	}
	if cfg.Server.ExternalURL != "https://gems.example.com" {
		t.Errorf("Server.ExternalURL = %q, want trailing slash trimmed", cfg.Server.ExternalURL)
	}
	if cfg.Threads.ClientID != DefaultThreadsConfig.ClientID {
		t.Errorf("Threads.ClientID = %q, want default", cfg.Threads.ClientID)
	}
	if cfg.Threads.RedirectURI != "https://gems.example.com/auth/callback" {
		t.Errorf("Threads.RedirectURI = %q, want external_url + /auth/callback", cfg.Threads.RedirectURI)
	}
	if len(cfg.Threads.Scopes) != 1 || cfg.Threads.Scopes[0] != "threads_basic" {
		t.Errorf("Threads.Scopes = %v, want [threads_basic]", cfg.Threads.Scopes)
	}
	if cfg.Frontend.BackendURL != cfg.Server.ExternalURL {
		t.Errorf("Frontend.BackendURL = %q, want external url", cfg.Frontend.BackendURL)
	}
	if cfg.Frontend.CallTimeout != 10*time.Second {
		t.Errorf("Frontend.CallTimeout = %v, want 10s", cfg.Frontend.CallTimeout)
	}
	if cfg.Sessions.Name != "threads_token" {
		t.Errorf("Sessions.Name = %q, want threads_token", cfg.Sessions.Name)
	}
	if cfg.Sessions.Lifetime != 30*24*time.Hour {
		t.Errorf("Sessions.Lifetime = %v, want 30 days", cfg.Sessions.Lifetime)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
}

func TestParseConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvThreadsClientSecret, "from-env")
	t.Setenv(EnvThreadsAccessToken, "app-token")
	t.Setenv(EnvStoragePath, "/tmp/gems.db")

	cfg, err := ParseConfig([]byte("server:\n  external_url: http://localhost:8080\nfeed:\n  enabled: true\n"))
	if err != nil {
		t.Fatalf("ParseConfig() unexpected error = %v", err)
	}

	if cfg.Threads.ClientSecret != "from-env" {
		t.Errorf("Threads.ClientSecret = %q, want from-env", cfg.Threads.ClientSecret)
	}
	if cfg.Storage == nil || !cfg.Storage.Enabled || cfg.Storage.Path != "/tmp/gems.db" {
		t.Errorf("Storage = %+v, want enabled at /tmp/gems.db", cfg.Storage)
	}
	if len(cfg.Feed.Accounts) != 4 {
		t.Errorf("Feed.Accounts = %v, want the four default accounts", cfg.Feed.Accounts)
	}
	if len(cfg.Feed.Keywords) != len(DefaultKeywords) {
		t.Errorf("Feed.Keywords has %d entries, want %d", len(cfg.Feed.Keywords), len(DefaultKeywords))
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantError bool
		errMsg    string
	}{
		{
			name:      "minimal config",
			yaml:      minimalConfig,
			wantError: false,
		},
		{
			name:      "missing external url",
			yaml:      "threads:\n  client_secret: shh\n",
			wantError: true,
			errMsg:    "server.external_url is required",
		},
		{
			name:      "missing client secret",
			yaml:      "server:\n  external_url: http://localhost\n",
			wantError: true,
			errMsg:    "threads.client_secret is required",
		},
		{
			name:      "feed without access token",
			yaml:      minimalConfig + "feed:\n  enabled: true\n",
			wantError: true,
			errMsg:    "threads.access_token is required",
		},
		{
			name:      "invalid log level",
			yaml:      minimalConfig + "log:\n  level: verbose\n",
			wantError: true,
			errMsg:    "invalid log level",
		},
		{
			name:      "redis cache without redis",
			yaml:      minimalConfig + "cache:\n  type: redis\n",
			wantError: true,
			errMsg:    "redis configuration must be enabled",
		},
		{
			name:      "redis indices collide",
			yaml:      minimalConfig + "cache:\n  type: hybrid\nredis:\n  address: localhost:6379\n  session_index: 1\n  cache_index: 1\n",
			wantError: true,
			errMsg:    "should be different",
		},
		{
			name:      "redis cache with defaults",
			yaml:      minimalConfig + "cache:\n  type: redis\nredis:\n  address: localhost:6379\n",
			wantError: false,
		},
		{
			name:      "distributed ttl too long",
			yaml:      minimalConfig + "redis:\n  address: localhost:6379\ndistributed:\n  enabled: true\n  ttl: 5m\n",
			wantError: true,
			errMsg:    "cannot be more than 1 minute",
		},
		{
			name:      "session cookie collides with frontend cookie",
			yaml:      minimalConfig + "sessions:\n  name: threadgems_local\n",
			wantError: true,
			errMsg:    "collides",
		},
		{
			name:      "bad redirect uri",
			yaml:      minimalConfig + "  redirect_uri: ftp://nope\n",
			wantError: true,
			errMsg:    "http or https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseConfig() expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseConfig() error = %v, want error containing %v", err, tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("ParseConfig() unexpected error = %v", err)
			}
		})
	}
}

func TestLoadConfigRequiresPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Errorf("LoadConfig(\"\") expected error but got none")
	}
}
