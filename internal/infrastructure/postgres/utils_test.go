package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, isRetryable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"})))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("boom")))
}

func TestValidIDs(t *testing.T) {
	good := "9b2f6c1e-8a40-4c5e-9f3a-2d7c1b0e4a11"
	assert.True(t, validID(good))
	assert.False(t, validID("p1"))
	assert.Equal(t, []string{good}, validIDs([]string{"x", good, ""}))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%wid%", likePattern("wid"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(""))
	assert.Equal(t, "a", *nullableString("a"))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/books?sslmode=disable", migrateURL("postgres://u:p@db:5432/books?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/books", migrateURL("postgresql://u@db/books"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestMigrationsEmbedded(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS transaction_lines")

	_, err = migrationsFS.ReadFile("migrations/000001_init.down.sql")
	assert.NoError(t, err)
}
