package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/realtime"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	broker := &recordingBroker{}
	notifications := &fakeNotificationRepo{}
	actions := newFakePostActionRepo()
	posts := newFakePostRepo(&model.Post{ID: 42, UserID: 2, Status: model.StatusApproved})
	svc := NewPostActionService(posts, actions, testUsers(), broker, NewNotificationService(notifications, broker))

	first, err := svc.ToggleLike(ctx, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, &dto.LikeResultDTO{PostID: 42, Liked: true, LikeCount: 1}, first)

	second, err := svc.ToggleLike(ctx, 1, 42)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Zero(t, second.LikeCount)
	assert.Empty(t, actions.likes)

	likes := broker.byEvent(realtime.EventNewLike)
	require.Len(t, likes, 2)
	assert.Equal(t, &dto.LikeEventDTO{PostID: 42, LikeCount: 0}, likes[1].payload)

	// only the first toggle created a like
	require.Len(t, notifications.created, 1)
	assert.Equal(t, model.KindLike, notifications.created[0].Kind)
	assert.Equal(t, "Alice A liked your post", notifications.created[0].Message)
}

func TestToggleLikeOwnPostAndMissingPost(t *testing.T) {
	ctx := context.Background()
	notifications := &fakeNotificationRepo{}
	broker := &recordingBroker{}
	posts := newFakePostRepo(
		&model.Post{ID: 1, UserID: 1, Status: model.StatusApproved},
		&model.Post{ID: 2, UserID: 2, Status: model.StatusRejected},
	)
	svc := NewPostActionService(posts, newFakePostActionRepo(), testUsers(), broker, NewNotificationService(notifications, broker))

	_, err := svc.ToggleLike(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, notifications.created)

	_, err = svc.ToggleLike(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.ToggleLike(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrAuthRequired)
}
