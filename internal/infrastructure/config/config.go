// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	Debug      bool

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (airline reference data)
	PostgresDSN string

	// Gmail
	GmailClientID        string
	GmailClientSecret    string
	GmailRefreshToken    string
	GmailPollInterval    time.Duration
	GmailSubjectPatterns []string

	// Processing
	ProcessInterval time.Duration
	WorkerCount     int

	// Redis parse cache
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisTTL      time.Duration

	// API rate limiting, requests per second per client
	APIRateLimit float64
	APIRateBurst int

	// Parser
	ParserRulesFile    string
	FirstNameWhitelist []string
	AmountTolerance    decimal.Decimal
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	tolerance, err := decimal.NewFromString(getEnv("AMOUNT_TOLERANCE", "0.01"))
	if err != nil {
		tolerance = decimal.New(1, -2)
	}

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Debug:        getEnvAsBool("DEBUG", false),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "etickets"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		GmailClientID:        getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret:    getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken:    getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailPollInterval:    time.Duration(getEnvAsInt("GMAIL_POLL_INTERVAL", 60)) * time.Second,
		GmailSubjectPatterns: getEnvAsList("GMAIL_SUBJECT_PATTERNS", []string{"e-ticket", "electronic ticket", "itinerary receipt", "boleto"}),

		ProcessInterval: time.Duration(getEnvAsInt("PROCESS_INTERVAL", 300)) * time.Second,
		WorkerCount:     getEnvAsInt("WORKER_COUNT", 4),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTTL:      time.Duration(getEnvAsInt("REDIS_TTL", 3600)) * time.Second,

		APIRateLimit: getEnvAsFloat("API_RATE_LIMIT", 10),
		APIRateBurst: getEnvAsInt("API_RATE_BURST", 20),

		ParserRulesFile:    getEnv("PARSER_RULES_FILE", ""),
		FirstNameWhitelist: getEnvAsList("FIRST_NAME_WHITELIST", nil),
		AmountTolerance:    tolerance,
	}

	if config.WorkerCount < 1 {
		config.WorkerCount = 1
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
