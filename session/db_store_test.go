package session

import (
	"context"
	"testing"
	"time"

	"workideas/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (*DBStore, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return NewDBStore(gormDB), mock
}

var sessionColumns = []string{"id", "usuario_id", "usuario_nome", "ip", "user_agent", "created_at", "last_seen_at"}

func TestDBStore_Get(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM `sessoes` WHERE id = \\?").
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows(sessionColumns).
			AddRow("abc", 3, "Bruno", "10.0.0.1", "ua", now, now))

	sess, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, uint(3), sess.UserID)
	assert.Equal(t, "Bruno", sess.UserName)
	assert.Equal(t, "10.0.0.1", sess.IP)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_GetNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT .* FROM `sessoes`").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_Create(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sessoes`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Create(context.Background(), &models.Session{
		ID: "abc", UserID: 1, UserName: "Ana", IP: "1.2.3.4", CreatedAt: now, LastSeenAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_Touch(t *testing.T) {
	store, mock := newMockStore(t)
	at := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `sessoes` SET `last_seen_at`=\\? WHERE id = \\?").
		WithArgs(at, "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Touch(context.Background(), "abc", at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_DeleteIdle(t *testing.T) {
	store, mock := newMockStore(t)
	before := time.Now().Add(-30 * time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `sessoes` WHERE last_seen_at < \\?").
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	n, err := store.DeleteIdle(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
