package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds the connection parameters for Postgres.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// NewDatabaseConfiguration reads the database configuration from the
// environment, loading a .env file first if one exists.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("CURRICULAB_DB_HOST"),
		Port:     os.Getenv("CURRICULAB_DB_PORT"),
		User:     os.Getenv("CURRICULAB_DB_USER"),
		Password: os.Getenv("CURRICULAB_DB_PASSWORD"),
		Name:     os.Getenv("CURRICULAB_DB_NAME"),
		SSLMode:  os.Getenv("CURRICULAB_DB_SSLMODE"),
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	if config.Host == "" || config.Port == "" || config.User == "" || config.Name == "" {
		return nil, fmt.Errorf("incomplete database configuration, need CURRICULAB_DB_HOST, CURRICULAB_DB_PORT, CURRICULAB_DB_USER and CURRICULAB_DB_NAME")
	}

	return config, nil
}

// Database bundles an open connection with its logger.
type Database struct {
	Instance *sql.DB
	Logger   *slog.Logger
	Name     string
}

// NewDatabase opens a Postgres connection and verifies it with a ping.
// It panics if the database is unreachable, mirroring the fail-fast
// behavior expected at startup.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.Name, config.SSLMode,
	)

	instance, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Panicf("error opening database %v: %v", name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := instance.PingContext(ctx); err != nil {
		log.Panicf("error pinging database %v: %v", name, err)
	}

	logger.Info("Connected to database", slog.String("database", name))

	return &Database{
		Instance: instance,
		Logger:   logger,
		Name:     name,
	}
}

// NewTestDatabase opens a database connection for tests with a stdout logger.
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelWarn,
		},
	}
	logger := slog.New(NewPrettyHandler(os.Stdout, opts))
	return NewDatabase("curriculab_test", config, logger)
}
