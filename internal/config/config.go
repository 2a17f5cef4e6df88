// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Snapshot backends
const (
	BackendNone     = "none"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMongoDB  = "mongodb"
	BackendRedis    = "redis"
)

// Token formats
const (
	TokenBase64 = "base64"
	TokenJWT    = "jwt"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
	// RequestTimeout bounds every request to the store actor.
	RequestTimeout time.Duration
	// SimulatedLatency is added before each /api response.
	SimulatedLatency time.Duration
}

type AuthConfig struct {
	TokenFormat string
	JWTSecret   string
	JWTTTL      time.Duration
	BcryptCost  int
}

// SnapshotConfig selects where the serialized store is kept.
type SnapshotConfig struct {
	Backend string
	Key     string
	Path    string
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	URI      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Auth           *AuthConfig
	Snapshot       *SnapshotConfig
	Database       *DatabaseConfig
	Mongo          *MongoConfig
	Redis          *RedisConfig
	AllowedOrigins []string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
		RequestTimeout: 5 * time.Second,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Port:    5432,
		SSLMode: "require",
	}
}

func DefaultSnapshotConfig() *SnapshotConfig {
	return &SnapshotConfig{
		Backend: BackendFile,
		Key:     "activityhub-mocks",
		Path:    "data",
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",          // Current directory
		"../../.env",    // Project root when running from cmd/engine
		"../../../.env", // Even higher directory
		filepath.Join(os.Getenv("GOPATH"), "src/activity-hub/.env"),
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		_ = godotenv.Load()
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}
	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}
	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}
	serverConfig.RequestTimeout = getDurationOrDefault("REQUEST_TIMEOUT", serverConfig.RequestTimeout)
	serverConfig.SimulatedLatency = getDurationOrDefault("SIMULATED_LATENCY", 0)

	authConfig := &AuthConfig{
		TokenFormat: strings.ToLower(getEnvOrDefault("TOKEN_FORMAT", TokenBase64)),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      getDurationOrDefault("JWT_TTL", 0),
		BcryptCost:  getIntOrDefault("BCRYPT_COST", bcrypt.DefaultCost),
	}
	switch authConfig.TokenFormat {
	case TokenBase64:
	case TokenJWT:
		if authConfig.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required when TOKEN_FORMAT is jwt")
		}
	default:
		return nil, fmt.Errorf("unsupported TOKEN_FORMAT %q", authConfig.TokenFormat)
	}

	snapshotConfig := DefaultSnapshotConfig()
	if backend := os.Getenv("SNAPSHOT_BACKEND"); backend != "" {
		snapshotConfig.Backend = strings.ToLower(backend)
	}
	snapshotConfig.Key = getEnvOrDefault("SNAPSHOT_KEY", snapshotConfig.Key)
	snapshotConfig.Path = getEnvOrDefault("SNAPSHOT_PATH", snapshotConfig.Path)

	dbConfig := DefaultDatabaseConfig()
	mongoConfig := &MongoConfig{
		URI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		Database: getEnvOrDefault("MONGODB_DATABASE", "activity_hub"),
	}
	redisConfig := &RedisConfig{
		Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getIntOrDefault("REDIS_DB", 0),
	}

	switch snapshotConfig.Backend {
	case BackendNone, BackendFile, BackendMongoDB, BackendRedis:
	case BackendPostgres:
		if err := loadPostgres(dbConfig); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported SNAPSHOT_BACKEND %q", snapshotConfig.Backend)
	}

	config := &Config{
		Server:         serverConfig,
		Auth:           authConfig,
		Snapshot:       snapshotConfig,
		Database:       dbConfig,
		Mongo:          mongoConfig,
		Redis:          redisConfig,
		AllowedOrigins: []string{"*"},
		Debug:          false,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

func loadPostgres(dbConfig *DatabaseConfig) error {
	// Prioritize DATABASE_URL if provided
	if uri := os.Getenv("DATABASE_URL"); uri != "" {
		dbConfig.URI = uri
		dbConfig.SSLMode = getSSLModeFromURI(uri)
		return nil
	}

	dbConfig.Host = getEnvOrDefault("DB_HOST", "localhost")
	dbConfig.Port = getIntOrDefault("DB_PORT", dbConfig.Port)

	dbConfig.User = os.Getenv("DB_USER")
	if dbConfig.User == "" {
		return fmt.Errorf("DB_USER environment variable is required when SNAPSHOT_BACKEND is postgres and DATABASE_URL is not set")
	}
	dbConfig.Password = os.Getenv("DB_PASSWORD")
	if dbConfig.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required when SNAPSHOT_BACKEND is postgres and DATABASE_URL is not set")
	}

	dbConfig.Name = getEnvOrDefault("DB_NAME", "postgres")
	dbConfig.SSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	dbConfig.URI = fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.Name,
		dbConfig.SSLMode,
	)
	return nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getDurationOrDefault accepts Go durations ("250ms") or plain milliseconds.
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

// Helper function to extract sslmode from a DSN, defaults to "require"
func getSSLModeFromURI(uri string) string {
	if strings.Contains(uri, "sslmode=") {
		parts := strings.Split(uri, "?")
		if len(parts) > 1 {
			queryParams := strings.Split(parts[1], "&")
			for _, param := range queryParams {
				kv := strings.SplitN(param, "=", 2)
				if len(kv) == 2 && kv[0] == "sslmode" {
					return kv[1]
				}
			}
		}
	}
	return "require"
}
