// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig      `mapstructure:"app"`
	Server    ServerConfig   `mapstructure:"server"`
	Upstream  UpstreamConfig `mapstructure:"upstream"`
	Database  DatabaseConfig `mapstructure:"database"`
	Session   SessionConfig  `mapstructure:"session"`
	Uploader  UploaderConfig `mapstructure:"uploader"`
	Locations LocationConfig `mapstructure:"locations"`
	Logging   LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig holds settings for the listing platform API this service
// fronts. All outbound calls (auth, locations, media, properties) go to it.
type UpstreamConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Timeout       int    `mapstructure:"timeout"`        // milliseconds
	SubmitTimeout int    `mapstructure:"submit_timeout"` // milliseconds, property submission only
	MaxRetries    int    `mapstructure:"max_retries"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig holds settings for issued session tokens.
type SessionConfig struct {
	Secret string `mapstructure:"secret"`
	TTL    int    `mapstructure:"ttl"` // minutes
}

// UploaderConfig holds settings for the image upload pipeline.
type UploaderConfig struct {
	MaxConcurrent int   `mapstructure:"max_concurrent"`
	MaxImageBytes int64 `mapstructure:"max_image_bytes"`
	MaxImages     int   `mapstructure:"max_images"`
	MaxRetries    int   `mapstructure:"max_retries"` // rate-limit retries only
}

// LocationConfig holds settings for the location dropdown cache.
type LocationConfig struct {
	CacheTTL int `mapstructure:"cache_ttl"` // seconds
}

// CacheTTLDuration returns the dropdown cache TTL as a time.Duration.
func (l LocationConfig) CacheTTLDuration() time.Duration {
	return time.Duration(l.CacheTTL) * time.Second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
