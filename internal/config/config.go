package config

import (
	"slices"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig    `yaml:"server"`
	Database    DatabaseConfig  `yaml:"database"`
	Auth        AuthConfig      `yaml:"auth"`
	HMPPSAuth   HMPPSAuthConfig `yaml:"hmpps_auth"`
	PrisonAPI   UpstreamConfig  `yaml:"prison_api"   env-prefix:"PRISON_API_"`
	LocationAPI UpstreamConfig  `yaml:"location_api" env-prefix:"LOCATION_API_"`
	Redis       RedisConfig     `yaml:"redis"`
	Edit        EditConfig      `yaml:"edit"`
	Log         LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds validation settings for coordinator access tokens.
type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer        string `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"hmpps-auth"`
	CoordinatorRoles string `yaml:"coordinator_roles" env:"AUTH_COORDINATOR_ROLES" env-default:"ROLE_USE_OF_FORCE_COORDINATOR"`
}

// Roles returns the comma-separated coordinator roles as a slice.
func (c AuthConfig) Roles() []string {
	var roles []string
	for _, r := range strings.Split(c.CoordinatorRoles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// IsCoordinatorRole checks if role grants access to report editing.
func (c AuthConfig) IsCoordinatorRole(role string) bool {
	return slices.Contains(c.Roles(), role)
}

// HMPPSAuthConfig holds client credentials for obtaining system tokens.
type HMPPSAuthConfig struct {
	BaseURL       string        `yaml:"base_url"       env:"HMPPS_AUTH_BASE_URL"`
	ClientID      string        `yaml:"client_id"      env:"HMPPS_AUTH_CLIENT_ID"`
	ClientSecret  string        `yaml:"client_secret"  env:"HMPPS_AUTH_CLIENT_SECRET"`
	Timeout       time.Duration `yaml:"timeout"        env:"HMPPS_AUTH_TIMEOUT"        env-default:"5s"`
	RefreshLeeway time.Duration `yaml:"refresh_leeway" env:"HMPPS_AUTH_REFRESH_LEEWAY" env-default:"30s"`
}

// Enabled reports whether system tokens can be requested. Without them
// prison and location names are shown as raw identifiers.
func (c HMPPSAuthConfig) Enabled() bool {
	return c.BaseURL != "" && c.ClientID != "" && c.ClientSecret != ""
}

// UpstreamConfig holds settings for a downstream HTTP API.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"TIMEOUT"  env-default:"5s"`
}

// RedisConfig holds settings for the name cache. An empty URL disables it.
type RedisConfig struct {
	URL         string        `yaml:"url"          env:"REDIS_URL"`
	NameTTL     time.Duration `yaml:"name_ttl"     env:"REDIS_NAME_TTL"     env-default:"1h"`
	PoolSize    int           `yaml:"pool_size"    env:"REDIS_POOL_SIZE"    env-default:"10"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// EditConfig holds settings for report edit comparison and rendering.
type EditConfig struct {
	TimeZone          string `yaml:"time_zone"          env:"EDIT_TIME_ZONE"          env-default:"Europe/London"`
	LookupConcurrency int    `yaml:"lookup_concurrency" env:"EDIT_LOOKUP_CONCURRENCY" env-default:"8"`
	NoneMessage       string `yaml:"none_message"       env:"EDIT_NONE_MESSAGE"       env-default:"None"`

	// Location is loaded from TimeZone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
