package helper

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabaseName     = "curriculab_test"
	testDatabaseUser     = "curriculab"
	testDatabasePassword = "curriculab"
)

// MustStartPostgresContainer starts a throwaway Postgres container for tests.
// It returns the terminate function, the mapped host port and any startup error.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDatabaseName),
		tcpostgres.WithUsername(testDatabaseUser),
		tcpostgres.WithPassword(testDatabasePassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, "", err
	}

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return container.Terminate, "", err
	}

	return container.Terminate, mappedPort.Port(), nil
}

// SetTestDatabaseConfigEnvs points the database configuration at the
// container started by MustStartPostgresContainer.
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("CURRICULAB_DB_HOST", "localhost")
	t.Setenv("CURRICULAB_DB_PORT", port)
	t.Setenv("CURRICULAB_DB_USER", testDatabaseUser)
	t.Setenv("CURRICULAB_DB_PASSWORD", testDatabasePassword)
	t.Setenv("CURRICULAB_DB_NAME", testDatabaseName)
	t.Setenv("CURRICULAB_DB_SSLMODE", "disable")
}
