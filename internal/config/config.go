package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Client  ClientConfig
	Routing RoutingConfig
	Fare    FareConfig
	Redis   RedisConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Name != "" && c.Name != "geofare" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	// APIToken, when set, is required as a bearer token on /api routes.
	APIToken string
}

// ClientConfig configures the geo/fare API client
type ClientConfig struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	CityCacheTTL time.Duration
}

// RoutingConfig configures driving route estimation on the backend
type RoutingConfig struct {
	GoogleMapsAPIKey string
	RoadFactor       float64
	AverageSpeedKmh  float64
}

// FareConfig holds backend fare parameters
type FareConfig struct {
	PerMinuteRate   float64
	SurgeMultiplier float64
	Currency        string
}

// RedisConfig configures the optional route cache
type RedisConfig struct {
	Addr     string
	RouteTTL time.Duration
}

// Enabled reports whether a Redis address is configured
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "geofare"),
			Password: getEnv("DB_PASSWORD", "geofare_password"),
			Name:     getEnv("DB_NAME", "geofare"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:     getEnv("APP_PORT", "8080"),
			APIToken: getEnv("API_TOKEN", ""),
		},
		Client: ClientConfig{
			BaseURL:      strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
			Token:        getEnv("API_TOKEN", ""),
			Timeout:      getEnvAsDuration("API_TIMEOUT", 5*time.Second),
			CityCacheTTL: getEnvAsDuration("CITY_CACHE_TTL", 5*time.Minute),
		},
		Routing: RoutingConfig{
			GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
			RoadFactor:       getEnvAsFloat("ROAD_FACTOR", 1.3),
			AverageSpeedKmh:  getEnvAsFloat("AVERAGE_SPEED_KMH", 50),
		},
		Fare: FareConfig{
			PerMinuteRate:   getEnvAsFloat("PER_MINUTE_RATE", 1.5),
			SurgeMultiplier: getEnvAsFloat("SURGE_MULTIPLIER", 1.0),
			Currency:        getEnv("CURRENCY", "INR"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			RouteTTL: getEnvAsDuration("ROUTE_CACHE_TTL", 30*time.Minute),
		},
	}

	if config.Routing.RoadFactor < 1 {
		return nil, fmt.Errorf("ROAD_FACTOR must be at least 1, got %v", config.Routing.RoadFactor)
	}
	if config.Routing.AverageSpeedKmh <= 0 {
		return nil, fmt.Errorf("AVERAGE_SPEED_KMH must be positive, got %v", config.Routing.AverageSpeedKmh)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
