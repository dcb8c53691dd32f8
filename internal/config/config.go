package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Authentication configuration
	Auth AuthConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MigrationsPath  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds bearer token settings
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	Origins []string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// envBindings maps config keys to the environment variables that set them
var envBindings = map[string]string{
	"server.port":            "PORT",
	"server.readtimeout":     "SERVER_READ_TIMEOUT",
	"server.writetimeout":    "SERVER_WRITE_TIMEOUT",
	"server.shutdowntimeout": "SERVER_SHUTDOWN_TIMEOUT",
	"server.migrationspath":  "MIGRATIONS_PATH",
	"database.host":          "DB_HOST",
	"database.port":          "DB_PORT",
	"database.user":          "DB_USER",
	"database.password":      "DB_PASSWORD",
	"database.name":          "DB_NAME",
	"database.sslmode":       "DB_SSLMODE",
	"database.maxopenconns":  "DB_MAX_OPEN_CONNS",
	"database.maxidleconns":  "DB_MAX_IDLE_CONNS",
	"database.maxlifetime":   "DB_MAX_LIFETIME",
	"auth.jwtsecret":         "JWT_SECRET",
	"auth.tokenttl":          "TOKEN_TTL",
	"auth.issuer":            "JWT_ISSUER",
	"auth.bcryptcost":        "BCRYPT_COST",
	"cors.origins":           "CORS_ORIGINS",
	"log.level":              "LOG_LEVEL",
	"log.format":             "LOG_FORMAT",
}

// Load reads configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.BindEnv("configfile", "CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("bind CONFIG_FILE: %w", err)
	}
	if path := v.GetString("configfile"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := fromViper(v)

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readtimeout", 30*time.Second)
	v.SetDefault("server.writetimeout", 60*time.Second)
	v.SetDefault("server.shutdowntimeout", 30*time.Second)
	v.SetDefault("server.migrationspath", "./migrations")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "inkwell")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.maxlifetime", 5*time.Minute)

	v.SetDefault("auth.tokenttl", 7*24*time.Hour)
	v.SetDefault("auth.issuer", "inkwell-api")
	v.SetDefault("auth.bcryptcost", 10)

	v.SetDefault("cors.origins", "*")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			ReadTimeout:     v.GetDuration("server.readtimeout"),
			WriteTimeout:    v.GetDuration("server.writetimeout"),
			ShutdownTimeout: v.GetDuration("server.shutdowntimeout"),
			MigrationsPath:  v.GetString("server.migrationspath"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("database.host"),
			Port:         v.GetString("database.port"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			Name:         v.GetString("database.name"),
			SSLMode:      v.GetString("database.sslmode"),
			MaxOpenConns: v.GetInt("database.maxopenconns"),
			MaxIdleConns: v.GetInt("database.maxidleconns"),
			MaxLifetime:  v.GetDuration("database.maxlifetime"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("auth.jwtsecret"),
			TokenTTL:   v.GetDuration("auth.tokenttl"),
			Issuer:     v.GetString("auth.issuer"),
			BcryptCost: v.GetInt("auth.bcryptcost"),
		},
		CORS: CORSConfig{
			Origins: splitList(v.GetString("cors.origins")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// AllowsAllOrigins reports whether CORS is open to any origin
func (c *CORSConfig) AllowsAllOrigins() bool {
	for _, o := range c.Origins {
		if o == "*" {
			return true
		}
	}
	return len(c.Origins) == 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
