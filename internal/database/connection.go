// Package database owns the Postgres connection pool configuration and
// lifecycle (open/ping/close), used by every repository package.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// Config is the connection pool's tunables. Field names and validation
// rules mirror the teacher's internal/database.Config contract
// (connection_test.go), adapted from its MariaDB defaults to this
// project's Postgres backend.
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns the process defaults used when no override is
// supplied by internal/config.
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            5432,
		User:            "maintcore",
		Database:        "maintcore",
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// LoadFromEnv overlays DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME/
// DB_SSL_MODE on top of the current values. An unparsable DB_PORT leaves
// the existing port untouched rather than erroring, matching the
// teacher's lenient-env-parsing behavior.
func (c *Config) LoadFromEnv() {
	if v := envLookup("DB_HOST"); v != "" {
		c.Host = v
	}
	if v := envLookup("DB_PORT"); v != "" {
		if p, err := parsePort(v); err == nil {
			c.Port = p
		}
	}
	if v := envLookup("DB_USER"); v != "" {
		c.User = v
	}
	if v := envLookup("DB_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := envLookup("DB_NAME"); v != "" {
		c.Database = v
	}
	if v := envLookup("DB_SSL_MODE"); v != "" {
		c.SSLMode = v
	}
}

// Validate checks the fields Connect relies on before opening a pool.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}
	if c.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be greater than 0")
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("max idle connections must be non-negative")
	}
	return nil
}

// ConnectionString builds a libpq-style keyword/value DSN. Password is
// omitted entirely when empty, rather than emitted as `password=`.
func (c *Config) ConnectionString() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Database, c.SSLMode)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// Connect validates config, opens a pgx-backed *sqlx.DB, applies pool
// limits, and pings once to fail fast on unreachable hosts.
func Connect(config *Config, logger *zap.Logger) (*sqlx.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	db, err := sqlx.Open("pgx", config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("connected to database",
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.String("database", config.Database),
	)
	return db, nil
}
