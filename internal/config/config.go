package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrInvalidPort       = errors.New("PORT must be between 1 and 65535")
	ErrInvalidCacheTTL   = errors.New("CACHE_TTL_SEC must be positive")
	ErrInvalidMaxResults = errors.New("SEARCH_MAX_RESULTS must be positive")
	ErrInvalidCacheSize  = errors.New("CACHE_MAX_ENTRIES must be positive")
)

type Config struct {
	Server     ServerConfig
	SerpAPI    SerpAPIConfig
	DuckDuckGo DuckDuckGoConfig
	Search     SearchConfig
	Cache      CacheConfig
	OpenAI     OpenAIConfig
	Telegram   TelegramConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// SerpAPIConfig - платный провайдер, без ключа выключен
type SerpAPIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type DuckDuckGoConfig struct {
	BaseURL   string
	UserAgent string
	Region    string
	Timeout   time.Duration
}

type SearchConfig struct {
	MaxResults     int
	RefreshTimeout time.Duration
}

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// OpenAIConfig нужен только агенту для разбора свободного текста
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// TelegramConfig - бот включается, если задан токен
type TelegramConfig struct {
	Token string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvIntOrDefault("PORT", 8000),
			ShutdownTimeout: time.Duration(getEnvIntOrDefault("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		},
		SerpAPI: SerpAPIConfig{
			APIKey:  os.Getenv("SERPAPI_API_KEY"),
			BaseURL: getEnvOrDefault("SERPAPI_BASE_URL", "https://serpapi.com"),
			Timeout: time.Duration(getEnvIntOrDefault("SERPAPI_TIMEOUT_SEC", 30)) * time.Second,
		},
		DuckDuckGo: DuckDuckGoConfig{
			BaseURL:   getEnvOrDefault("DDG_BASE_URL", "https://html.duckduckgo.com"),
			UserAgent: os.Getenv("DDG_USER_AGENT"),
			Region:    getEnvOrDefault("DDG_REGION", "wt-wt"),
			Timeout:   time.Duration(getEnvIntOrDefault("DDG_TIMEOUT_SEC", 30)) * time.Second,
		},
		Search: SearchConfig{
			MaxResults:     getEnvIntOrDefault("SEARCH_MAX_RESULTS", 15),
			RefreshTimeout: time.Duration(getEnvIntOrDefault("REFRESH_TIMEOUT_SEC", 60)) * time.Second,
		},
		Cache: CacheConfig{
			TTL:        time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 3600)) * time.Second,
			MaxEntries: getEnvIntOrDefault("CACHE_MAX_ENTRIES", 100),
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
			BaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout: time.Duration(getEnvIntOrDefault("OPENAI_TIMEOUT_SEC", 60)) * time.Second,
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	if c.Cache.TTL <= 0 {
		return ErrInvalidCacheTTL
	}
	if c.Search.MaxResults <= 0 {
		return ErrInvalidMaxResults
	}
	if c.Cache.MaxEntries <= 0 {
		return ErrInvalidCacheSize
	}
	return nil
}

func (c *Config) SerpAPIEnabled() bool {
	return c.SerpAPI.APIKey != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
