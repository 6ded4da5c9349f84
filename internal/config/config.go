// README: Config loader with env defaults for HTTP, storage, flow runtime, locale, and auth settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Auth modes for the flow gateway.
const (
	AuthNone     = "none"
	AuthToken    = "token"
	AuthFirebase = "firebase"
)

type FlowConfig struct {
	RunnerURL string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

type AuthConfig struct {
	Mode            string
	Token           string
	ProjectID       string
	CredentialsFile string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Kafka struct {
		Broker string
		Topic  string
	}
	Flow FlowConfig
	Auth AuthConfig
	AI   struct {
		GeminiKey string
	}
	Maps struct {
		APIKey string
	}
	Locale struct {
		Default string
	}
	Log struct {
		Level  string
		Format string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FREIGHT_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("FREIGHT_DB_DSN")
	cfg.Redis.Addr = os.Getenv("FREIGHT_REDIS_ADDR")
	cfg.Kafka.Broker = os.Getenv("FREIGHT_KAFKA_BROKER")
	cfg.Kafka.Topic = envOrDefault("FREIGHT_KAFKA_TOPIC", "flow-invocations")
	cfg.Flow.RunnerURL = strings.TrimRight(os.Getenv("FREIGHT_FLOW_RUNNER_URL"), "/")
	cfg.Flow.Timeout = time.Duration(envOrDefaultInt("FREIGHT_FLOW_TIMEOUT", 60)) * time.Second
	cfg.Flow.CacheTTL = time.Duration(envOrDefaultInt("FREIGHT_FLOW_CACHE_TTL", 300)) * time.Second
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Locale.Default = envOrDefault("FREIGHT_DEFAULT_LOCALE", "en")
	cfg.Log.Level = envOrDefault("FREIGHT_LOG_LEVEL", "info")
	cfg.Log.Format = envOrDefault("FREIGHT_LOG_FORMAT", "json")

	cfg.Auth.Mode = strings.ToLower(envOrDefault("FREIGHT_AUTH_MODE", AuthNone))
	cfg.Auth.Token = os.Getenv("FREIGHT_AUTH_TOKEN")
	cfg.Auth.ProjectID = os.Getenv("FREIGHT_FIREBASE_PROJECT_ID")
	cfg.Auth.CredentialsFile = os.Getenv("FREIGHT_FIREBASE_CREDENTIALS")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Auth.Mode {
	case AuthNone:
	case AuthToken:
		if c.Auth.Token == "" {
			return fmt.Errorf("config: FREIGHT_AUTH_TOKEN is required when FREIGHT_AUTH_MODE=%s", AuthToken)
		}
	case AuthFirebase:
		if c.Auth.ProjectID == "" {
			return fmt.Errorf("config: FREIGHT_FIREBASE_PROJECT_ID is required when FREIGHT_AUTH_MODE=%s", AuthFirebase)
		}
	default:
		return fmt.Errorf("config: unknown FREIGHT_AUTH_MODE %q", c.Auth.Mode)
	}
	if c.Flow.RunnerURL == "" && c.AI.GeminiKey == "" {
		return fmt.Errorf("config: either FREIGHT_FLOW_RUNNER_URL or GEMINI_API_KEY must be set")
	}
	// Zero disables the flow timeout.
	if c.Flow.Timeout < 0 {
		return fmt.Errorf("config: FREIGHT_FLOW_TIMEOUT must not be negative")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
