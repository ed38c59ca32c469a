package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendMemory   = "memory"
)

var ErrMissingSecret = errors.New("AUTH_SECRET_KEY is required")

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	MySQL    MySQLConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	ShutdownTimeout    string
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTL       string
	RefreshTTL     string
	CookieSecure   string
	CookieSameSite string
	CookiePath     string
	CookieDomain   string
	AdminUsername  string
	AdminPassword  string
}

type StorageConfig struct {
	Backend string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// Load reads the process environment. A .env file in the working directory,
// when present, is merged in first without overriding variables that are
// already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:               getenv("PORT", "3000"),
			CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
			ShutdownTimeout:    getenv("SHUTDOWN_TIMEOUT", "10s"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("AUTH_SECRET_KEY"),
			TokenTTL:       getenv("AUTH_TOKEN_TTL", "1h"),
			RefreshTTL:     getenv("AUTH_REFRESH_TTL", "168h"),
			CookieSecure:   os.Getenv("AUTH_COOKIE_SECURE"),
			CookieSameSite: os.Getenv("AUTH_COOKIE_SAMESITE"),
			CookiePath:     os.Getenv("AUTH_COOKIE_PATH"),
			CookieDomain:   os.Getenv("AUTH_COOKIE_DOMAIN"),
			AdminUsername:  os.Getenv("ADMIN_USERNAME"),
			AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getenv("STORAGE_BACKEND", BackendPostgres)),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		MySQL: MySQLConfig{
			Host:     getenv("MYSQL_HOST", "localhost"),
			Port:     getenv("MYSQL_PORT", "3306"),
			User:     os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_PASSWORD"),
			Database: os.Getenv("MYSQL_DATABASE_NAME"),
		},
	}
}

// Validate reports settings the service cannot start without. There is no
// fallback signing secret.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingSecret
	}
	switch c.Storage.Backend {
	case BackendPostgres, BackendMySQL, BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendMySQL && (c.MySQL.User == "" || c.MySQL.Database == "") {
		return errors.New("MYSQL_USER and MYSQL_DATABASE_NAME are required for the mysql backend")
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(csv string) []string {
	var out []string
	for _, item := range strings.Split(csv, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
