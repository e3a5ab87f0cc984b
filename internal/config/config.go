package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config is the raw environment snapshot taken once at startup.
// Validation happens separately in ResolveDatabase so tests can feed
// arbitrary raw values without touching the process environment.
type Config struct {
	HTTPAddr string
	LogLevel string

	PostgresServer       string
	PostgresPort         string
	PostgresUser         string
	PostgresPassword     string
	PostgresPasswordFile string
	PostgresDB           string
}

// Database is the immutable connection descriptor shared by all request
// handling for the lifetime of the process.
type Database struct {
	URI string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:             envDefault("HTTP_ADDR", ":8080"),
		LogLevel:             envDefault("LOG_LEVEL", "info"),
		PostgresServer:       os.Getenv("POSTGRES_SERVER"),
		PostgresPort:         envDefault("POSTGRES_PORT", "5432"),
		PostgresUser:         os.Getenv("POSTGRES_USER"),
		PostgresPassword:     os.Getenv("POSTGRES_PASSWORD"),
		PostgresPasswordFile: os.Getenv("POSTGRES_PASSWORD_FILE"),
		PostgresDB:           os.Getenv("POSTGRES_DB"),
	}
}

// ResolveDatabase validates the raw config and assembles the Postgres
// connection URI. Credential policy: a direct password takes precedence
// over a password file, and at least one of the two must be present.
// Any error here is fatal at startup.
func ResolveDatabase(cfg Config) (Database, error) {
	required := []struct {
		key   string
		value string
	}{
		{"POSTGRES_SERVER", cfg.PostgresServer},
		{"POSTGRES_USER", cfg.PostgresUser},
		{"POSTGRES_DB", cfg.PostgresDB},
	}
	for _, r := range required {
		if r.value == "" {
			return Database{}, fmt.Errorf("required environment variable missing: %s", r.key)
		}
	}

	port, err := strconv.Atoi(cfg.PostgresPort)
	if err != nil || port < 1 || port > 65535 {
		return Database{}, fmt.Errorf("invalid POSTGRES_PORT: %q", cfg.PostgresPort)
	}

	password, err := resolvePassword(cfg)
	if err != nil {
		return Database{}, err
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.PostgresUser, password),
		Host:   fmt.Sprintf("%s:%d", cfg.PostgresServer, port),
		Path:   "/" + cfg.PostgresDB,
	}
	return Database{URI: u.String()}, nil
}

func resolvePassword(cfg Config) (string, error) {
	// A supplied password file must be readable even when the direct
	// password ends up winning.
	filePassword := ""
	if cfg.PostgresPasswordFile != "" {
		content, err := os.ReadFile(cfg.PostgresPasswordFile)
		if err != nil {
			return "", fmt.Errorf("password file %s: %w", cfg.PostgresPasswordFile, err)
		}
		// Secret files commonly end with a trailing newline.
		filePassword = strings.TrimRight(string(content), " \t\r\n")
	}
	if cfg.PostgresPassword != "" {
		return cfg.PostgresPassword, nil
	}
	if cfg.PostgresPasswordFile != "" {
		return filePassword, nil
	}
	return "", fmt.Errorf("at least one of POSTGRES_PASSWORD and POSTGRES_PASSWORD_FILE must be set")
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
