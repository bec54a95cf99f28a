package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config file path is required (use -config or -c)")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML, applies environment overrides and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvThreadsClientID       = "THREADGEMS_THREADS_CLIENT_ID"
	EnvThreadsClientSecret   = "THREADGEMS_THREADS_CLIENT_SECRET"
	EnvThreadsRedirectURI    = "THREADGEMS_THREADS_REDIRECT_URI"
	EnvThreadsAccessToken    = "THREADGEMS_THREADS_ACCESS_TOKEN"
	EnvRedisPassword         = "THREADGEMS_REDIS_PASSWORD"
	EnvRedisUsername         = "THREADGEMS_REDIS_USERNAME"
	EnvRedisSentinelUsername = "THREADGEMS_REDIS_SENTINEL_USERNAME"
	EnvRedisSentinelPassword = "THREADGEMS_REDIS_SENTINEL_PASSWORD"
	EnvStoragePath           = "THREADGEMS_STORAGE_PATH"
)

func applyEnvironmentOverrides(config *Config) {
	if clientID := os.Getenv(EnvThreadsClientID); clientID != "" {
		config.Threads.ClientID = clientID
	}

	if clientSecret := os.Getenv(EnvThreadsClientSecret); clientSecret != "" {
		config.Threads.ClientSecret = clientSecret
	}

	if redirectURI := os.Getenv(EnvThreadsRedirectURI); redirectURI != "" {
		config.Threads.RedirectURI = redirectURI
	}

	if accessToken := os.Getenv(EnvThreadsAccessToken); accessToken != "" {
		config.Threads.AccessToken = accessToken
	}

	if redisPassword := os.Getenv(EnvRedisPassword); redisPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Password = redisPassword
	}

	if redisUsername := os.Getenv(EnvRedisUsername); redisUsername != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Username = redisUsername
	}

	if sentinelUsername := os.Getenv(EnvRedisSentinelUsername); sentinelUsername != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		if config.Redis.Sentinel == nil {
			config.Redis.Sentinel = &RedisSentinelConfig{}
		}
		config.Redis.Sentinel.SentinelUsername = sentinelUsername
	}

	if sentinelPassword := os.Getenv(EnvRedisSentinelPassword); sentinelPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		if config.Redis.Sentinel == nil {
			config.Redis.Sentinel = &RedisSentinelConfig{}
		}
		config.Redis.Sentinel.SentinelPassword = sentinelPassword
	}

	if path := os.Getenv(EnvStoragePath); path != "" {
		if config.Storage == nil {
			config.Storage = &StorageConfig{Enabled: true}
		}
		config.Storage.Path = path
	}
}

func validateConfig(config *Config) error {
	validators := []func() error{
		config.validateServerConfig,
		config.validateThreadsConfig,
		config.validateFrontendConfig,
		config.validateLogConfig,
		config.validateCORSConfig,
		config.validateSessionConfig,
		config.validateFeedConfig,
		config.validateCacheConfig,
	}

	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}

	if config.Cache.Type != "memory" || config.Sessions.Store == "redis" || config.distributedEnabled() {
		if err := config.validateRedisConfig(); err != nil {
			return err
		}
	}

	if err := config.validateDistributedConfig(); err != nil {
		return err
	}

	return config.validateStorageConfig()
}

func (c *Config) distributedEnabled() bool {
	return c.Distributed != nil && c.Distributed.Enabled
}

func (c *Config) validateServerConfig() error {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	}

	if err := validateURL(c.Server.ExternalURL, "server.external_url"); err != nil {
		return err
	}
	c.Server.ExternalURL = strings.TrimSuffix(c.Server.ExternalURL, "/")

	if c.Server.Debug != nil && c.Server.Debug.Enabled {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port >= 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	return nil
}

func (c *Config) validateThreadsConfig() error {
	if c.Threads.ClientID == "" {
		c.Threads.ClientID = DefaultThreadsConfig.ClientID
	}

	if c.Threads.ClientSecret == "" {
		return fmt.Errorf("threads.client_secret is required")
	}

	if c.Threads.RedirectURI == "" {
		c.Threads.RedirectURI = c.Server.ExternalURL + "/auth/callback"
	} else if err := validateURL(c.Threads.RedirectURI, "threads.redirect_uri"); err != nil {
		return err
	}

	if len(c.Threads.Scopes) == 0 {
		c.Threads.Scopes = DefaultThreadsConfig.Scopes
	}

	if c.Threads.AuthBaseURL == "" {
		c.Threads.AuthBaseURL = DefaultThreadsConfig.AuthBaseURL
	} else if err := validateURL(c.Threads.AuthBaseURL, "threads.auth_base_url"); err != nil {
		return err
	}

	if c.Threads.GraphBaseURL == "" {
		c.Threads.GraphBaseURL = DefaultThreadsConfig.GraphBaseURL
	} else if err := validateURL(c.Threads.GraphBaseURL, "threads.graph_base_url"); err != nil {
		return err
	}

	c.Threads.AuthBaseURL = strings.TrimSuffix(c.Threads.AuthBaseURL, "/")
	c.Threads.GraphBaseURL = strings.TrimSuffix(c.Threads.GraphBaseURL, "/")

	if c.Threads.APIVersion == "" {
		c.Threads.APIVersion = DefaultThreadsConfig.APIVersion
	}

	if c.Threads.RequestTimeout == 0 {
		c.Threads.RequestTimeout = DefaultThreadsConfig.RequestTimeout
	} else if c.Threads.RequestTimeout < time.Second {
		return fmt.Errorf("threads.request_timeout cannot be less than 1 second")
	}

	return nil
}

func (c *Config) validateFrontendConfig() error {
	if c.Frontend.BackendURL == "" {
		c.Frontend.BackendURL = c.Server.ExternalURL
	} else if err := validateURL(c.Frontend.BackendURL, "frontend.backend_url"); err != nil {
		return err
	}
	c.Frontend.BackendURL = strings.TrimSuffix(c.Frontend.BackendURL, "/")

	if c.Frontend.CallTimeout == 0 {
		c.Frontend.CallTimeout = DefaultFrontendConfig.CallTimeout
	} else if c.Frontend.CallTimeout < 0 {
		return fmt.Errorf("frontend.call_timeout cannot be negative")
	}

	if c.Frontend.DurableCookieName == "" {
		c.Frontend.DurableCookieName = DefaultFrontendConfig.DurableCookieName
	}

	if c.Frontend.SessionCookieName == "" {
		c.Frontend.SessionCookieName = DefaultFrontendConfig.SessionCookieName
	}

	if c.Frontend.DurableCookieName == c.Frontend.SessionCookieName {
		return fmt.Errorf("frontend.durable_cookie_name and frontend.session_cookie_name must differ")
	}

	if c.Frontend.DurableLifetime == 0 {
		c.Frontend.DurableLifetime = DefaultFrontendConfig.DurableLifetime
	}

	if c.Frontend.LoginSuccessURL == "" {
		c.Frontend.LoginSuccessURL = DefaultFrontendConfig.LoginSuccessURL
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s, options are text or json", c.Log.Format)
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig.Level
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s, options are debug, info, warn, error", c.Log.Level)
	}

	return nil
}

func (c *Config) validateCORSConfig() error {
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = DefaultCORSConfig.AllowedOrigins
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = DefaultCORSConfig.AllowedMethods
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = DefaultCORSConfig.AllowedHeaders
	}
	if c.CORS.MaxAgeSeconds == 0 {
		c.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
	}

	return nil
}

func (c *Config) validateSessionConfig() error {
	if c.Sessions.Store == "" {
		c.Sessions.Store = DefaultSessionConfig.Store
	}

	switch c.Sessions.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid session store: %s, options are 'memory' or 'redis'", c.Sessions.Store)
	}

	if c.Sessions.Name == "" {
		c.Sessions.Name = DefaultSessionConfig.Name
	}

	if c.Sessions.Name == c.Frontend.DurableCookieName || c.Sessions.Name == c.Frontend.SessionCookieName {
		return fmt.Errorf("sessions.name %q collides with a frontend cookie name", c.Sessions.Name)
	}

	if c.Sessions.Lifetime == 0 {
		c.Sessions.Lifetime = DefaultSessionConfig.Lifetime
	} else if c.Sessions.Lifetime < time.Minute {
		return fmt.Errorf("sessions.lifetime cannot be less than 1 minute")
	}

	return nil
}

func (c *Config) validateFeedConfig() error {
	if !c.Feed.Enabled {
		return nil
	}

	if c.Threads.AccessToken == "" {
		return fmt.Errorf("threads.access_token is required when the feed is enabled")
	}

	if len(c.Feed.Accounts) == 0 {
		c.Feed.Accounts = DefaultFeedConfig.Accounts
	}

	for i, account := range c.Feed.Accounts {
		if strings.TrimSpace(account) == "" {
			return fmt.Errorf("feed.accounts[%d] is empty", i)
		}
	}

	if len(c.Feed.Keywords) == 0 {
		c.Feed.Keywords = DefaultFeedConfig.Keywords
	}

	if c.Feed.PostsPerAccount == 0 {
		c.Feed.PostsPerAccount = DefaultFeedConfig.PostsPerAccount
	} else if c.Feed.PostsPerAccount < 0 || c.Feed.PostsPerAccount > 100 {
		return fmt.Errorf("feed.posts_per_account must be between 1 and 100, got %d", c.Feed.PostsPerAccount)
	}

	if c.Feed.RecentCount == 0 {
		c.Feed.RecentCount = DefaultFeedConfig.RecentCount
	} else if c.Feed.RecentCount < 0 {
		return fmt.Errorf("feed.recent_count cannot be negative")
	}

	if c.Feed.FetchInterval == 0 {
		c.Feed.FetchInterval = DefaultFeedConfig.FetchInterval
	} else if c.Feed.FetchInterval < time.Minute {
		return fmt.Errorf("feed.fetch_interval cannot be less than 1 minute")
	}

	if c.Feed.DatasetTTL == 0 {
		c.Feed.DatasetTTL = DefaultFeedConfig.DatasetTTL
	} else if c.Feed.DatasetTTL < c.Feed.FetchInterval {
		return fmt.Errorf("feed.dataset_ttl cannot be shorter than feed.fetch_interval")
	}

	if c.Feed.MaxAttempts == 0 {
		c.Feed.MaxAttempts = DefaultFeedConfig.MaxAttempts
	} else if c.Feed.MaxAttempts < 0 || c.Feed.MaxAttempts > 10 {
		return fmt.Errorf("feed.max_attempts must be between 1 and 10, got %d", c.Feed.MaxAttempts)
	}

	return nil
}

func (c *Config) validateCacheConfig() error {
	if c.Cache.Type == "" {
		c.Cache.Type = "memory"
	}

	switch c.Cache.Type {
	case "memory":
	case "redis", "hybrid":
		if c.Redis == nil {
			return fmt.Errorf("redis configuration must be enabled to use %s for the feed cache", c.Cache.Type)
		}
	default:
		return fmt.Errorf("invalid cache type: %s, must be 'memory', 'redis' or 'hybrid'", c.Cache.Type)
	}

	return nil
}

func (c *Config) validateRedisConfig() error {
	if c.Redis == nil {
		return fmt.Errorf("redis config is nil")
	}

	if c.Redis.Sentinel == nil {
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required")
		}

		if _, _, err := net.SplitHostPort(c.Redis.Address); err != nil {
			return fmt.Errorf("invalid redis address format (expected host:port): %w", err)
		}
	}

	if c.Redis.SessionIndex == 0 && c.Redis.CacheIndex == 0 && c.Redis.LeaderIndex == 0 {
		c.Redis.SessionIndex = DefaultRedisConfig.SessionIndex
		c.Redis.CacheIndex = DefaultRedisConfig.CacheIndex
		c.Redis.LeaderIndex = DefaultRedisConfig.LeaderIndex
	}

	const maxRedisDB = 15
	indices := map[string]int{
		"session_index": c.Redis.SessionIndex,
		"cache_index":   c.Redis.CacheIndex,
		"leader_index":  c.Redis.LeaderIndex,
	}
	for name, index := range indices {
		if index < 0 {
			return fmt.Errorf("redis %s must be non-negative, got %d", name, index)
		}
		if index > maxRedisDB {
			return fmt.Errorf("redis %s %d exceeds typical maximum of %d", name, index, maxRedisDB)
		}
	}

	if c.Redis.SessionIndex == c.Redis.CacheIndex {
		return fmt.Errorf("redis session_index and cache_index should be different to avoid data collision (both are %d)", c.Redis.SessionIndex)
	}

	if c.Redis.LeaderIndex == c.Redis.CacheIndex {
		return fmt.Errorf("redis leader_index and cache_index should be different to avoid data collision (both are %d)", c.Redis.LeaderIndex)
	}

	if c.Redis.LeaderIndex == c.Redis.SessionIndex {
		return fmt.Errorf("redis leader_index and session_index should be different to avoid data collision (both are %d)", c.Redis.LeaderIndex)
	}

	if c.Redis.Sentinel != nil {
		if c.Redis.Sentinel.MasterName == "" {
			return fmt.Errorf("sentinel master_name is required")
		}
		if len(c.Redis.Sentinel.SentinelAddresses) == 0 {
			return fmt.Errorf("at least one sentinel address is required")
		}
	}

	return nil
}

func (c *Config) validateDistributedConfig() error {
	if !c.distributedEnabled() {
		return nil
	}

	if c.Distributed.TTL.Seconds() <= 0 {
		c.Distributed.TTL = DefaultDistributedConfig.TTL
	} else if c.Distributed.TTL > time.Minute {
		return fmt.Errorf("distributed ttl cannot be more than 1 minute")
	}

	return nil
}

func (c *Config) validateStorageConfig() error {
	if c.Storage == nil || !c.Storage.Enabled {
		return nil
	}

	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStorageConfig.Path
	}

	return nil
}
