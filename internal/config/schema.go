package config

import (
	"time"
)

type Config struct {
	Server      ServerConfig       `yaml:"server"`
	Threads     ThreadsConfig      `yaml:"threads"`
	Frontend    FrontendConfig     `yaml:"frontend"`
	Log         LogConfig          `yaml:"log"`
	CORS        CORSConfig         `yaml:"cors"`
	Sessions    SessionConfig      `yaml:"sessions"`
	Feed        FeedConfig         `yaml:"feed"`
	Cache       CacheConfig        `yaml:"cache"`
	Redis       *RedisConfig       `yaml:"redis"`
	Distributed *DistributedConfig `yaml:"distributed"`
	Storage     *StorageConfig     `yaml:"storage"`
}

type ServerConfig struct {
	Port        int                `yaml:"port"`
	ExternalURL string             `yaml:"external_url"`
	Debug       *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port: 8080,
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

// ThreadsConfig describes the Threads app registration and Graph API endpoints.
type ThreadsConfig struct {
	ClientID       string        `yaml:"client_id"`
	ClientSecret   string        `yaml:"client_secret"`
	RedirectURI    string        `yaml:"redirect_uri"`
	Scopes         []string      `yaml:"scopes"`
	AuthBaseURL    string        `yaml:"auth_base_url"`
	GraphBaseURL   string        `yaml:"graph_base_url"`
	APIVersion     string        `yaml:"api_version"`
	AccessToken    string        `yaml:"access_token"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

var DefaultThreadsConfig = ThreadsConfig{
	ClientID:       "1252170616679839",
	Scopes:         []string{"threads_basic"},
	AuthBaseURL:    "https://threads.net",
	GraphBaseURL:   "https://graph.threads.net",
	APIVersion:     "v1.0",
	RequestTimeout: 10 * time.Second,
}

// FrontendConfig configures the server-side shell that drives the login flow
// on behalf of the browser.
type FrontendConfig struct {
	BackendURL        string        `yaml:"backend_url"`
	CallTimeout       time.Duration `yaml:"call_timeout"`
	DurableCookieName string        `yaml:"durable_cookie_name"`
	SessionCookieName string        `yaml:"session_cookie_name"`
	DurableLifetime   time.Duration `yaml:"durable_lifetime"`
	LoginSuccessURL   string        `yaml:"login_success_url"`
}

var DefaultFrontendConfig = FrontendConfig{
	CallTimeout:       10 * time.Second,
	DurableCookieName: "threadgems_local",
	SessionCookieName: "threadgems_session",
	DurableLifetime:   30 * 24 * time.Hour,
	LoginSuccessURL:   "/?auth=success",
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	MaxAgeSeconds:  300,
}

// SessionConfig configures the backend session that holds the Threads token.
type SessionConfig struct {
	Store    string        `yaml:"store"`
	Name     string        `yaml:"name"`
	Lifetime time.Duration `yaml:"lifetime"`
	Secure   bool          `yaml:"secure"`
}

var DefaultSessionConfig = SessionConfig{
	Store:    "memory",
	Name:     "threads_token",
	Lifetime: 30 * 24 * time.Hour,
	Secure:   true,
}

type FeedConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Accounts        []string      `yaml:"accounts"`
	Keywords        []string      `yaml:"keywords"`
	PostsPerAccount int           `yaml:"posts_per_account"`
	RecentCount     int           `yaml:"recent_count"`
	FetchInterval   time.Duration `yaml:"fetch_interval"`
	DatasetTTL      time.Duration `yaml:"dataset_ttl"`
	MaxAttempts     int           `yaml:"max_attempts"`
}

var DefaultFeedConfig = FeedConfig{
	Accounts:        []string{"meta", "threads", "instagram", "facebook"},
	Keywords:        DefaultKeywords,
	PostsPerAccount: 25,
	RecentCount:     10,
	FetchInterval:   6 * time.Hour,
	DatasetTTL:      24 * time.Hour,
	MaxAttempts:     3,
}

var DefaultKeywords = []string{
	"design", "ui", "ux", "interface", "user experience", "visual", "layout",
	"typography", "color", "brand", "creative", "aesthetic", "mockup",
	"prototype", "figma", "sketch", "adobe", "illustration", "graphic",
	"web design", "app design", "mobile design",
}

type CacheConfig struct {
	Type string `yaml:"type"` // "memory", "redis" or "hybrid"
}

type RedisConfig struct {
	Address      string               `yaml:"address"`
	Username     string               `yaml:"username"`
	Password     string               `yaml:"password"`
	Sentinel     *RedisSentinelConfig `yaml:"sentinel"`
	SessionIndex int                  `yaml:"session_index"`
	CacheIndex   int                  `yaml:"cache_index"`
	LeaderIndex  int                  `yaml:"leader_index"`
}

var DefaultRedisConfig = RedisConfig{
	SessionIndex: 0,
	CacheIndex:   1,
	LeaderIndex:  2,
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name"`
	SentinelAddresses []string `yaml:"addresses"`
	SentinelPassword  string   `yaml:"password"`
	SentinelUsername  string   `yaml:"username"`
}

type DistributedConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

var DefaultDistributedConfig = DistributedConfig{
	Enabled: false,
	TTL:     30 * time.Second,
}

type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

var DefaultStorageConfig = StorageConfig{
	Path: "threadgems.db",
}
