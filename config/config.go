package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Notification methods
const (
	MethodTelegram = "telegram"
	MethodWebhook  = "webhook"
	MethodEmail    = "email"
	MethodConsole  = "console"
)

// State backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config represents the application configuration
type Config struct {
	// Source page configuration
	TargetURL string
	BaseURL   string
	UserAgent string

	// Polling configuration
	PollInterval time.Duration

	// Notification configuration
	NotifyMethod     string
	TelegramBotToken string
	TelegramChatID   string
	WebhookURL       string

	// SMTP parameters, accepted but unused while the email channel is a stub
	SMTPHost string
	SMTPPort int
	SMTPFrom string
	SMTPTo   string

	// State persistence configuration
	StateBackend string
	StateDir     string
	RedisAddr    string
	RedisDB      int

	// Memcache configuration (empty address disables the backoff cache)
	MemcacheAddr string

	// Fallback extraction keywords (case-insensitive regexp)
	FallbackKeywords string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	pollInterval, _ := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "180"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	targetURL := getEnv("TARGET_URL", "https://www.studierendenwerk-bonn.de/en/housing/current-housing-offers")

	return Config{
		TargetURL:        targetURL,
		BaseURL:          getEnv("BASE_URL", deriveBaseURL(targetURL)),
		UserAgent:        getEnv("USER_AGENT", "flatwatcher/1.0 (+housing offer watcher; contact operator)"),
		PollInterval:     time.Duration(pollInterval) * time.Second,
		NotifyMethod:     getEnv("NOTIFY_METHOD", MethodConsole),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         smtpPort,
		SMTPFrom:         getEnv("SMTP_FROM", ""),
		SMTPTo:           getEnv("SMTP_TO", ""),
		StateBackend:     getEnv("STATE_BACKEND", BackendFile),
		StateDir:         getEnv("STATE_DIR", "state"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          redisDB,
		MemcacheAddr:     getEnv("MEMCACHE_ADDR", ""),
		FallbackKeywords: getEnv("FALLBACK_KEYWORDS", "wohnung|zimmer|wohnen|angebot|miet|bewerb|apartment|frei"),
		Environment:      getEnv("FLATWATCHER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	u, err := url.Parse(c.TargetURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid TARGET_URL %q", c.TargetURL)
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid BASE_URL %q: %w", c.BaseURL, err)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	switch c.NotifyMethod {
	case MethodTelegram, MethodWebhook, MethodEmail, MethodConsole:
	default:
		return fmt.Errorf("unknown NOTIFY_METHOD %q", c.NotifyMethod)
	}
	switch c.StateBackend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q", c.StateBackend)
	}
	return nil
}

// deriveBaseURL reduces the target URL to its scheme and host
func deriveBaseURL(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return target
	}
	return u.Scheme + "://" + u.Host
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
