package config

import (
	"fmt"
	"time"
)

// DatabaseConfig describes the save database used by the database backend
type DatabaseConfig struct {
	// Driver: "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// Postgres URL; overrides the individual fields when set
	URL string `mapstructure:"url"`

	// Postgres fields
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// SQLite file, or ":memory:"
	Path string `mapstructure:"path" validate:"required_if=Type sqlite"`

	// LogQueries echoes every SQL statement through gorm's logger
	LogQueries bool `mapstructure:"log_queries"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration. SQLite always runs with a
// single open connection.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the driver connection string
func (c DatabaseConfig) DSN() string {
	switch c.Type {
	case "postgres":
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	case "sqlite":
		if c.Path == "" {
			return ":memory:"
		}
		return c.Path
	default:
		return ""
	}
}

// InMemory reports whether the database lives only as long as its connection
func (c DatabaseConfig) InMemory() bool {
	return c.Type == "sqlite" && c.DSN() == ":memory:"
}
