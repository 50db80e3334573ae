package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"siscav/internal/model"
)

// newTestDB opens an in-memory SQLite database with the same TranslateError
// setting as production, so unique-index violations surface as
// gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and visible to
	// all goroutines in the test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.AuthorizedPlate{}, &model.AccessLog{}))
	return db
}
