package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/adapters/persistence"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/config"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/database"
)

func TestOpenSaveDatabase_CreatesSQLiteFileAndTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inn.db")

	db, err := database.OpenSaveDatabase(&config.DatabaseConfig{Type: "sqlite", Path: path})
	require.NoError(t, err)
	defer database.Close(db)

	assert.FileExists(t, path)
	assert.True(t, db.Migrator().HasTable(&persistence.SaveGameModel{}))
}

func TestNewConnection_RejectsUnknownDriver(t *testing.T) {
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "mysql"})

	assert.ErrorContains(t, err, "unsupported database type")
}
