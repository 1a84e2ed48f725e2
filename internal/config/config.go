package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// DefaultJWTSecret is the placeholder signing secret used when
// JWT_SECRET is unset.  It exists so the service can boot in local
// development, and it MUST be overridden in any real deployment; Load
// logs a warning whenever the placeholder is in effect.
const DefaultJWTSecret = "change-this-secret"

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  It is built once at
// startup and passed to component constructors; nothing reads the
// environment after Load returns.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBDriver string // "sqlite" (default, local disk-backed) or "mysql"
	DBPath   string // sqlite database file path
	DBUser   string // mysql username
	DBPass   string // mysql password (optional)
	DBHost   string // mysql host address
	DBPort   string // mysql port number
	DBName   string // mysql database name

	JWTSecret     string // secret used to sign access tokens
	TokenTTLHours int    // access token lifetime in hours
	BcryptCost    int    // bcrypt cost for password hashing

	UploadDir      string // directory for uploaded swapper images
	MaxUploadBytes int64  // maximum accepted upload size
	BaseURL        string // public base URL override; derived per request when empty
}

// Load reads configuration from the environment, applying defaults
// suitable for local development.  When the MySQL driver is selected
// the connection variables become required and missing values abort
// startup.
func Load() Config {
	cfg := Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "5000"),
		DBDriver:       getenv("DB_DRIVER", "sqlite"),
		DBPath:         getenv("DB_PATH", "data/swapper.db"),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      getenv("JWT_SECRET", DefaultJWTSecret),
		TokenTTLHours:  atoiDefault(getenv("TOKEN_TTL_HOURS", "24")),
		BcryptCost:     atoiDefault(getenv("BCRYPT_COST", "10")),
		UploadDir:      getenv("UPLOAD_DIR", "uploads/swapper"),
		MaxUploadBytes: int64(atoiDefault(getenv("MAX_UPLOAD_MB", "16"))) << 20,
		BaseURL:        os.Getenv("BASE_URL"),
	}
	if cfg.DBDriver == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	if cfg.JWTSecret == DefaultJWTSecret {
		log.Printf("WARNING: JWT_SECRET is not set; using the placeholder secret. Do not run production with this value.")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If
// the variable is unset or empty, the application logs a fatal error
// and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int in env: %q", s)
	}
	return n
}
