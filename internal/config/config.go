package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const devJWTSecret = "dev-secret-change-in-production"

var (
	ErrBackendURLRequired = errors.New("BACKEND_SERVER is required")
	ErrDebounceInvalid    = errors.New("SEARCH_DEBOUNCE must be positive")
	ErrJWTSecretRequired  = errors.New("JWT_SECRET must be set in production environment")
	ErrDriverUnsupported  = errors.New("DATABASE_DRIVER must be mysql or sqlite")
)

// Client holds the configuration of the admin client.
type Client struct {
	Env            string
	LogLevel       string
	BackendURL     string
	StoragePath    string
	SearchDebounce time.Duration
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server holds the configuration of the projects API server.
type Server struct {
	Port           string
	Env            string
	LogLevel       string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiry      time.Duration
	UploadDir      string
	AdminUsername  string
	AdminPassword  string
	AllowedOrigins []string
}

// LoadDotEnv loads a .env file into the process environment if one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}
}

// LoadClient reads the client configuration from the environment.
func LoadClient() (Client, error) {
	cfg := Client{
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BackendURL:     strings.TrimRight(getEnv("BACKEND_SERVER", "http://localhost:8080"), "/"),
		StoragePath:    getEnv("FOLIOADMIN_STORAGE", defaultStoragePath()),
		SearchDebounce: getEnvAsDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
		RateLimitRPS:   getEnvAsFloat("CLIENT_RATE_LIMIT", 10),
		RateLimitBurst: getEnvAsInt("CLIENT_RATE_BURST", 5),
	}

	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// Validate checks the client configuration for unusable values.
func (c Client) Validate() error {
	if c.BackendURL == "" {
		return ErrBackendURLRequired
	}
	if c.SearchDebounce <= 0 {
		return ErrDebounceInvalid
	}
	return nil
}

// LoadServer reads the API server configuration from the environment.
func LoadServer() (Server, error) {
	cfg := Server{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "./folio.db"),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:      getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		AdminUsername:  getEnv("ADMIN_USERNAME", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks the server configuration for unusable values.
func (c Server) Validate() error {
	if c.Env == "production" && c.JWTSecret == devJWTSecret {
		return ErrJWTSecretRequired
	}
	if c.DatabaseDriver != "mysql" && c.DatabaseDriver != "sqlite" {
		return ErrDriverUnsupported
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "folioadmin.db"
	}
	return filepath.Join(dir, "folioadmin", "storage.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Int("default", fallback).Msg("invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvAsFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Float64("default", fallback).Msg("invalid number, using default")
		return fallback
	}
	return f
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Dur("default", fallback).Msg("invalid duration, using default")
		return fallback
	}
	return d
}
