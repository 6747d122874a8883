package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/yukikurage/scrum-board-api/internal/constants"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	Port          string
	BaseURL       string
	TimeZone      string
	PageSize      int
	MaxPageSize   int
	OpenAIAPIKey  string
	LogFile       string
}

// Load reads the configuration from the environment. Values from a .env file in
// the working directory are applied first without overriding the real environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "scrum"),
		DBPassword:    getEnv("DB_PASSWORD", "scrum"),
		DBName:        getEnv("DB_NAME", "scrum"),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		Port:          getEnv("PORT", "8080"),
		BaseURL:       getEnv("BASE_URL", ""),
		TimeZone:      getEnv("TIME_ZONE", "UTC"),
		PageSize:      getEnvInt("PAGE_SIZE", constants.DefaultPageSize),
		MaxPageSize:   getEnvInt("MAX_PAGE_SIZE", constants.MaxPageSize),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		LogFile:       getEnv("LOG_FILE", "logs/scrum.log"),
	}

	if cfg.MaxPageSize < constants.MinPageSize {
		cfg.MaxPageSize = constants.MaxPageSize
	}
	if cfg.PageSize < constants.MinPageSize || cfg.PageSize > cfg.MaxPageSize {
		cfg.PageSize = min(constants.DefaultPageSize, cfg.MaxPageSize)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
