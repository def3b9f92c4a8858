package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/voyageplanner-go/internal/infrastructure/database"
)

// NewTestDB returns a migrated in-memory SQLite store that lives only as long
// as the calling test
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test database")

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
