package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileLikeCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepo(db)

	mock.ExpectExec("UPDATE posts p\\s+LEFT JOIN \\(SELECT post_id, COUNT\\(\\*\\) AS cnt FROM likes GROUP BY post_id\\)").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ReconcileLikeCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
