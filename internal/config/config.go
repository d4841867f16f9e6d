package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strings"
)

// Store driver names accepted in STORE_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Database fields are only consulted when
// the MySQL store driver is selected.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	StoreDriver string // seat store backend: "mysql" or "memory"
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		StoreDriver: driver(),
	}
	if cfg.StoreDriver == DriverMySQL {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// driver reads STORE_DRIVER, defaulting to MySQL. Unknown values are
// rejected at startup rather than surfacing later as a nil store.
func driver() string {
	v := strings.ToLower(os.Getenv("STORE_DRIVER"))
	switch v {
	case "", DriverMySQL:
		return DriverMySQL
	case DriverMemory:
		return DriverMemory
	}
	log.Fatalf("unsupported STORE_DRIVER: %q", v)
	return ""
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
