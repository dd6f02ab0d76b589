package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeCreates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostActionRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `likes`").
		WithArgs(uint64(2), uint64(10), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `posts` SET `like_count`=like_count \\+ 1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT `like_count` FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(4))
	mock.ExpectCommit()

	liked, count, err := repo.ToggleLike(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeRemovesOnDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostActionRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `likes`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectExec("DELETE FROM `likes`").
		WithArgs(uint64(2), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `posts` SET `like_count`=GREATEST").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT `like_count` FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(3))
	mock.ExpectCommit()

	liked, count, err := repo.ToggleLike(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostActionRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `likes`").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "foreign key"})
	mock.ExpectRollback()

	_, _, err := repo.ToggleLike(context.Background(), 2, 10)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateError(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateError(nil))
}
