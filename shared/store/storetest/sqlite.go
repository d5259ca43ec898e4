package storetest

import (
	"fmt"
	"strings"
	"testing"

	"seller-marketplace/shared/database"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/store/sqlstore"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLite returns an empty store on a private in-memory SQLite database.
// It is closed when the test ends.
func NewSQLite(t *testing.T) *store.Store {
	s, _ := NewSQLiteDB(t)
	return s
}

// NewSQLiteDB is NewSQLite that also returns the gorm handle, for seeding
// tables the store cannot write.
func NewSQLiteDB(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Open(sqlite.Open(dsn), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlstore.New(db), db
}
