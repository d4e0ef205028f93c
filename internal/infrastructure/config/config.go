// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresDSN string

	// MongoDB (rail staging)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Upstream providers
	RapidAPIKey        string
	TripadvisorBaseURL string
	SkyscannerBaseURL  string
	PricelineBaseURL   string
	RailBaseURL        string
	BusBaseURL         string
	ProviderTimeout    time.Duration

	// Display-only USD to INR conversion applied to priceline fares.
	// A nicety, not authoritative.
	USDToINRRate float64

	// Data
	AirportDataPath string
	QueryRowLimit   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=transitguide port=5432 sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "TrainDatabase"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		RapidAPIKey:        getEnv("RAPIDAPI_KEY", ""),
		TripadvisorBaseURL: getEnv("TRIPADVISOR_BASE_URL", "https://tripadvisor16.p.rapidapi.com"),
		SkyscannerBaseURL:  getEnv("SKYSCANNER_BASE_URL", "https://sky-scanner3.p.rapidapi.com"),
		PricelineBaseURL:   getEnv("PRICELINE_BASE_URL", "https://priceline-com2.p.rapidapi.com"),
		RailBaseURL:        getEnv("RAIL_BASE_URL", "https://railways.makemytrip.com"),
		BusBaseURL:         getEnv("BUS_BASE_URL", "https://www.zingbus.com"),
		ProviderTimeout:    time.Duration(getEnvAsInt("PROVIDER_TIMEOUT", 15)) * time.Second,

		USDToINRRate: getEnvAsFloat("USD_TO_INR_RATE", 84.46),

		AirportDataPath: getEnv("AIRPORT_DATA_PATH", "assets/airport_data.csv"),
		QueryRowLimit:   getEnvAsInt("QUERY_ROW_LIMIT", 50),
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
