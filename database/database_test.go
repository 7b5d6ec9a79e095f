package database

import (
	"goodreads/config"
	"goodreads/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	pg := DSN(&config.Config{
		DBDriver:   "postgres",
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "goodreads",
	})
	assert.Equal(t, "host=db user=postgres password=secret dbname=goodreads port=5432 sslmode=disable", pg)

	my := DSN(&config.Config{
		DBDriver:   "mysql",
		DBHost:     "db",
		DBPort:     "3306",
		DBUser:     "root",
		DBPassword: "secret",
		DBName:     "goodreads",
	})
	assert.Equal(t, "root:secret@tcp(db:3306)/goodreads?charset=utf8mb4&parseTime=True&loc=UTC", my)

	lite := DSN(&config.Config{DBDriver: "sqlite", DBName: "goodreads.db"})
	assert.Equal(t, "file:goodreads.db?_foreign_keys=on", lite)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestRunMigrations_SQLite(t *testing.T) {
	db, err := Open("sqlite", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))

	for _, model := range []any{&models.User{}, &models.Book{}, &models.Review{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := Open("sqlite", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	err = db.Create(&models.Review{BookID: 42, UserID: 42, StarsGiven: 3, Comment: "orphan"}).Error
	assert.Error(t, err)
}

func TestTableOptions(t *testing.T) {
	assert.Contains(t, TableOptions("mysql"), "COLLATE=utf8mb4_bin")
	assert.Empty(t, TableOptions("postgres"))
	assert.Empty(t, TableOptions("sqlite"))
}
