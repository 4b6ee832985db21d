package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port                string
	Environment         string // ENV: production, development, etc.
	Host                string // Raw HOST env (e.g. https://guests.example.com)
	AllowedHost         string // Hostname only for strict host check (production only)
	APIBaseURL          string // Backend JSON API the UI talks to
	RedisURI            string // Empty runs without Redis (in-memory banners, local alert feed)
	AllowedOrigins      []string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	BannerTTL           time.Duration
	SentimentDebounce   time.Duration
	APITimeout          time.Duration
	LogLevel            string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = hostname(host)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", ""), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	// The UI is served from HOST itself, so its own origin is always allowed
	if origin := strings.TrimRight(strings.TrimSpace(host), "/"); origin != "" && !containsOrigin(allowedOrigins, origin) {
		allowedOrigins = append(allowedOrigins, origin)
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		Host:                host,
		AllowedHost:         allowedHost,
		APIBaseURL:          strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
		RedisURI:            getEnv("REDIS_URI", ""),
		AllowedOrigins:      allowedOrigins,
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		BannerTTL:           getDuration("BANNER_TTL", 5*time.Second),
		SentimentDebounce:   getDuration("SENTIMENT_DEBOUNCE", 500*time.Millisecond),
		APITimeout:          getDuration("API_TIMEOUT", 10*time.Second),
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// hostname strips scheme, path and port from a HOST value.
func hostname(host string) string {
	h := strings.TrimSpace(host)
	for _, prefix := range []string{"https://", "http://"} {
		h = strings.TrimPrefix(h, prefix)
	}
	if idx := strings.Index(h, "/"); idx != -1 {
		h = h[:idx]
	}
	if idx := strings.Index(h, ":"); idx != -1 {
		h = h[:idx]
	}
	return strings.TrimSpace(h)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// RedisEnabled reports whether REDIS_URI was set.
func (c *Config) RedisEnabled() bool {
	return c.RedisURI != ""
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("5s", "500ms"); unparsable or non-positive values fall back to the default.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
