// Package common provides configuration management, identifier encoding,
// and HTTP endpoint utilities for the DPP Go components. It includes support
// for YAML configuration files, environment variable overrides, CORS setup,
// health endpoints, and the shared error taxonomy.
package common

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

// Config represents the complete configuration structure for the DPP service.
// It combines server settings, database configuration, CORS policy,
// authentication and repository policy settings.
type Config struct {
	Server     ServerConfig     `yaml:"server"`     // HTTP server configuration
	Postgres   PostgresConfig   `yaml:"postgres"`   // PostgreSQL database settings
	CorsConfig CorsConfig       `yaml:"cors"`       // CORS policy configuration
	Auth       AuthConfig       `yaml:"auth"`       // Bearer token settings
	Repository RepositoryConfig `yaml:"repository"` // Repository policy settings
}

// ServerConfig contains HTTP server configuration parameters.
type ServerConfig struct {
	Host        string `yaml:"host"`        // Bind address (default: 0.0.0.0)
	Port        int    `yaml:"port"`        // HTTP server port (default: 5010)
	ContextPath string `yaml:"contextPath"` // Base path for all endpoints
}

// PostgresConfig contains PostgreSQL database connection parameters.
type PostgresConfig struct {
	Host               string `yaml:"host"`               // Database host address
	Port               int    `yaml:"port"`               // Database port (default: 5432)
	User               string `yaml:"user"`               // Database username
	Password           string `yaml:"password"`           // Database password
	DBName             string `yaml:"dbname"`             // Database name
	MaxOpenConnections int    `yaml:"maxOpenConnections"` // Maximum open connections
}

// CorsConfig contains Cross-Origin Resource Sharing (CORS) policy settings.
type CorsConfig struct {
	AllowedOrigins   []string `yaml:"allowedOrigins"`   // Allowed origin domains
	AllowedMethods   []string `yaml:"allowedMethods"`   // Allowed HTTP methods
	AllowedHeaders   []string `yaml:"allowedHeaders"`   // Allowed request headers
	AllowCredentials bool     `yaml:"allowCredentials"` // Allow credentials in requests
}

// AuthConfig contains bearer token verification settings. The service does
// not issue tokens; it only extracts the requester role from tokens minted
// by the external identity provider.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"` // Verify bearer tokens when true
	Secret  string `mapstructure:"secret" json:"secret"`   // HS256 shared secret
}

// RepositoryConfig contains shell repository policy settings.
type RepositoryConfig struct {
	Backend       string `mapstructure:"backend" json:"backend"`             // "memory" or "postgres"
	UniqueIdShort bool   `mapstructure:"uniqueIdShort" json:"uniqueIdShort"` // Enforce idShort uniqueness across shells
}

// LoadConfig loads the configuration from YAML files and environment variables.
//
// The function supports multiple configuration sources with the following precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (if provided)
// 3. Default values (lowest priority)
//
// Environment variables use underscore notation (e.g., SERVER_PORT for server.port).
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		log.Printf("📁 Loading config from file: %s", configPath)
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Println("📁 No config file provided — loading from environment variables only")
	}

	// Override config with environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	log.Println("✅ Configuration loaded successfully")
	PrintConfiguration(cfg)
	return cfg, nil
}

// setDefaults configures values that let the service run in development
// environments without a configuration file. Production deployments should
// override these through configuration files or environment variables.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5010)
	v.SetDefault("server.contextPath", "/api/v1/dpp")

	// PostgreSQL defaults
	v.SetDefault("postgres.host", "db")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "admin")
	v.SetDefault("postgres.password", "admin123")
	v.SetDefault("postgres.dbname", "dppTestDB")
	v.SetDefault("postgres.maxOpenConnections", 50)

	// CORS defaults
	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"*"})
	v.SetDefault("cors.allowCredentials", true)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret", "")

	v.SetDefault("repository.backend", "memory")
	v.SetDefault("repository.uniqueIdShort", false)
}

// PrintConfiguration prints the current configuration to the console with
// sensitive data redacted.
func PrintConfiguration(cfg *Config) {
	// Create a copy of the config to avoid modifying the original
	cfgCopy := *cfg

	if cfg.Postgres.Host != "" {
		cfgCopy.Postgres.Host = "****"
		cfgCopy.Postgres.User = "****"
		cfgCopy.Postgres.Password = "****"
	}
	if cfg.Auth.Secret != "" {
		cfgCopy.Auth.Secret = "****"
	}

	configJSON, err := json.MarshalIndent(cfgCopy, "", "  ")
	if err != nil {
		log.Printf("Unable to marshal configuration to JSON: %v", err)
		return
	}

	log.Printf("📜 Loaded configuration:\n%s", string(configJSON))
}

// AddCors configures Cross-Origin Resource Sharing middleware for the router
// based on the loaded configuration.
func AddCors(r *chi.Mux, config *Config) {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.CorsConfig.AllowedOrigins,
		AllowedMethods:   config.CorsConfig.AllowedMethods,
		AllowedHeaders:   config.CorsConfig.AllowedHeaders,
		AllowCredentials: config.CorsConfig.AllowCredentials,
	})
	r.Use(c.Handler)
}

// NormalizeBasePath ensures a context path is either empty or starts with a
// slash and carries no trailing slash, so it can be mounted on a chi router.
func NormalizeBasePath(contextPath string) string {
	p := strings.TrimSpace(contextPath)
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}
