package cache_test

import (
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cboragen/cboragen/pkg/cache"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(sqlite.New(sqlite.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestLookupHitsL1WithoutTouchingL2(t *testing.T) {
	gormDB, mock := newMockDB(t)

	store, err := cache.NewTwoTier(8, gormDB)
	require.NoError(t, err)

	store.Put("schema.cbgs", cache.Entry{ContentHash: "abc", SchemaName: "S"})

	got, ok := store.Lookup("schema.cbgs", "abc")
	require.True(t, ok)
	assert.Equal(t, "S", got.SchemaName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupMissesOnContentHashChange(t *testing.T) {
	gormDB, mock := newMockDB(t)

	store, err := cache.NewTwoTier(8, gormDB)
	require.NoError(t, err)

	store.Put("schema.cbgs", cache.Entry{ContentHash: "abc"})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WillReturnRows(sqlmock.NewRows([]string{"path", "content_hash", "error_count", "warning_count", "schema_name"}))

	_, ok := store.Lookup("schema.cbgs", "def")
	assert.False(t, ok)
}

func TestLookupFallsThroughToL2OnL1Miss(t *testing.T) {
	gormDB, mock := newMockDB(t)

	store, err := cache.NewTwoTier(8, gormDB)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"path", "content_hash", "error_count", "warning_count", "schema_name"}).
		AddRow("other.cbgs", "xyz", 0, 1, "Other")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).WillReturnRows(rows)

	got, ok := store.Lookup("other.cbgs", "xyz")
	require.True(t, ok)
	assert.Equal(t, "Other", got.SchemaName)
	assert.Equal(t, 1, got.WarningCount)
}

func TestNilL2IsAlwaysAMissOnL1Miss(t *testing.T) {
	store, err := cache.NewTwoTier(8, nil)
	require.NoError(t, err)

	_, ok := store.Lookup("unseen.cbgs", "abc")
	assert.False(t, ok)
}
