package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultExpoPushURL is Expo's push send endpoint.
const DefaultExpoPushURL = "https://exp.host/--/api/v2/push/send"

type Config struct {
	Host string
	Port string

	// FirebaseCredentials is the raw service-account JSON from FIREBASE_CONFIG.
	FirebaseCredentials []byte
	FirebaseProjectID   string

	ExpoPushURL     string
	ProviderTimeout time.Duration

	RedisURL string

	AppEnv   string
	LogLevel string
	LogFile  string

	OTLPEndpoint    string
	OTELServiceName string
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsProduction reports whether APP_ENV selects production logging.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	rawCreds := os.Getenv("FIREBASE_CONFIG")
	if rawCreds == "" {
		return nil, fmt.Errorf("FIREBASE_CONFIG is required")
	}
	projectID, err := parseServiceAccount([]byte(rawCreds))
	if err != nil {
		return nil, err
	}

	providerTimeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "0s"))
	if err != nil || providerTimeout < 0 {
		log.Printf("Invalid PROVIDER_TIMEOUT %q, disabling gateway timeout", os.Getenv("PROVIDER_TIMEOUT"))
		providerTimeout = 0
	}

	return &Config{
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "3000"),

		FirebaseCredentials: []byte(rawCreds),
		FirebaseProjectID:   projectID,

		ExpoPushURL:     getEnv("EXPO_PUSH_URL", DefaultExpoPushURL),
		ProviderTimeout: providerTimeout,

		RedisURL: os.Getenv("REDIS_URL"),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTELServiceName: getEnv("OTEL_SERVICE_NAME", "push-relay"),
	}, nil
}

// parseServiceAccount checks that the credential blob is JSON and returns its project_id.
func parseServiceAccount(raw []byte) (string, error) {
	var account struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(raw, &account); err != nil {
		return "", fmt.Errorf("parse FIREBASE_CONFIG: %w", err)
	}
	if account.ProjectID == "" {
		return "", fmt.Errorf("FIREBASE_CONFIG is missing project_id")
	}
	return account.ProjectID, nil
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
