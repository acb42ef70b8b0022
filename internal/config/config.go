package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Auth     AuthConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// ProviderConfig holds settings for the vision-model provider.
type ProviderConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`

	// Upstream routing preferences passed through to OpenRouter.
	Order          []string `mapstructure:"order"`
	AllowFallbacks bool     `mapstructure:"allow_fallbacks"`
	Sort           string   `mapstructure:"sort"`

	// Optional OpenRouter app attribution headers.
	Referer string `mapstructure:"referer"`
	Title   string `mapstructure:"title"`
}

// AuthConfig holds the shared secret guarding the external API.
// When AppKeyHash is set it takes precedence over AppKey.
type AuthConfig struct {
	AppKey     string `mapstructure:"app_key"`
	AppKeyHash string `mapstructure:"app_key_hash"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from a .env file (if present) and environment
// variables with the PASSPORTX_ prefix. The provider and app keys also accept
// the unprefixed OPENROUTER_API_KEY and MY_APP_API_KEY names.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PASSPORTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")

	// Provider defaults
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.endpoint", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("provider.model", "qwen/qwen3.5-flash-02-23")
	v.SetDefault("provider.timeout_secs", 60)
	v.SetDefault("provider.order", "alibaba")
	v.SetDefault("provider.allow_fallbacks", false)
	v.SetDefault("provider.sort", "throughput")
	v.SetDefault("provider.referer", "")
	v.SetDefault("provider.title", "")

	// Auth defaults
	v.SetDefault("auth.app_key", "")
	v.SetDefault("auth.app_key_hash", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5000,http://127.0.0.1:5000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string][]string{
		"server.port":              {"PASSPORTX_SERVER_PORT"},
		"server.read_timeout":      {"PASSPORTX_SERVER_READ_TIMEOUT"},
		"server.write_timeout":     {"PASSPORTX_SERVER_WRITE_TIMEOUT"},
		"server.environment":       {"PASSPORTX_SERVER_ENVIRONMENT"},
		"provider.api_key":         {"PASSPORTX_PROVIDER_API_KEY", "OPENROUTER_API_KEY"},
		"provider.endpoint":        {"PASSPORTX_PROVIDER_ENDPOINT"},
		"provider.model":           {"PASSPORTX_PROVIDER_MODEL"},
		"provider.timeout_secs":    {"PASSPORTX_PROVIDER_TIMEOUT_SECS"},
		"provider.order":           {"PASSPORTX_PROVIDER_ORDER"},
		"provider.allow_fallbacks": {"PASSPORTX_PROVIDER_ALLOW_FALLBACKS"},
		"provider.sort":            {"PASSPORTX_PROVIDER_SORT"},
		"provider.referer":         {"PASSPORTX_PROVIDER_REFERER"},
		"provider.title":           {"PASSPORTX_PROVIDER_TITLE"},
		"auth.app_key":             {"PASSPORTX_AUTH_APP_KEY", "MY_APP_API_KEY"},
		"auth.app_key_hash":        {"PASSPORTX_AUTH_APP_KEY_HASH"},
		"log.level":                {"PASSPORTX_LOG_LEVEL"},
		"log.format":               {"PASSPORTX_LOG_FORMAT"},
		"cors.allowed_origins":     {"PASSPORTX_CORS_ALLOWED_ORIGINS"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if PASSPORTX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PASSPORTX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Provider = ProviderConfig{
		APIKey:         v.GetString("provider.api_key"),
		Endpoint:       v.GetString("provider.endpoint"),
		Model:          v.GetString("provider.model"),
		TimeoutSecs:    v.GetInt("provider.timeout_secs"),
		Order:          splitList(v.GetString("provider.order")),
		AllowFallbacks: v.GetBool("provider.allow_fallbacks"),
		Sort:           v.GetString("provider.sort"),
		Referer:        v.GetString("provider.referer"),
		Title:          v.GetString("provider.title"),
	}
	cfg.Auth = AuthConfig{
		AppKey:     v.GetString("auth.app_key"),
		AppKeyHash: v.GetString("auth.app_key_hash"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
