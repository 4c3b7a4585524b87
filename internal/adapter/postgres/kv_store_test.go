package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*KVStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKVStore(db), mock
}

func TestKVStoreGet(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)).
		WithArgs("theme").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("dark"))

	value, found, err := store.Get(context.Background(), "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreGetMissing(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)).
		WithArgs("campaigns").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	value, found, err := store.Get(context.Background(), "campaigns")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreGetError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store`)).WillReturnError(boom)

	_, _, err := store.Get(context.Background(), "theme")
	assert.ErrorIs(t, err, boom)
}

func TestKVStoreSet(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store (key, value, updated_at)`)).
		WithArgs("campaigns", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "campaigns", `[]`))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStoreSetError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("disk full")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_store`)).WillReturnError(boom)

	err := store.Set(context.Background(), "theme", "light")
	assert.ErrorIs(t, err, boom)
}
