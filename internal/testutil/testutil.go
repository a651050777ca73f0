package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noamlvn/nikudquiz/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open("file::memory:")
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database
}
