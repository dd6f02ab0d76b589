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

func TestFollowToggleNotifiesOnlyOnCreate(t *testing.T) {
	ctx := context.Background()
	broker := &recordingBroker{}
	notifications := &fakeNotificationRepo{}
	follows := &fakeUserFollowRepo{edges: map[[2]uint64]bool{}}
	svc := NewUserFollowService(follows, testUsers(), broker, NewNotificationService(notifications, broker))

	res, err := svc.Follow(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.Equal(t, dto.FollowActionFollow, res.Action)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, model.KindFollow, notifications.created[0].Kind)
	assert.Equal(t, "@alice started following you", notifications.created[0].Message)

	res, err = svc.Follow(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.False(t, res.Following)
	assert.Equal(t, dto.FollowActionUnfollow, res.Action)
	assert.Len(t, notifications.created, 1)

	assert.Len(t, broker.byEvent(realtime.EventFollowUpdate), 2)
}

func TestFollowExplicitActionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	notifications := &fakeNotificationRepo{}
	follows := &fakeUserFollowRepo{edges: map[[2]uint64]bool{}}
	broker := &recordingBroker{}
	svc := NewUserFollowService(follows, testUsers(), broker, NewNotificationService(notifications, broker))

	for i := 0; i < 2; i++ {
		res, err := svc.Follow(ctx, 1, 2, dto.FollowActionFollow)
		require.NoError(t, err)
		assert.True(t, res.Following)
	}
	assert.Len(t, notifications.created, 1)

	res, err := svc.Follow(ctx, 1, 2, dto.FollowActionUnfollow)
	require.NoError(t, err)
	assert.False(t, res.Following)
	assert.Empty(t, follows.edges)
}

func TestFollowValidation(t *testing.T) {
	svc := NewUserFollowService(&fakeUserFollowRepo{edges: map[[2]uint64]bool{}}, testUsers(), &recordingBroker{}, nil)
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 0, "")
	assert.ErrorIs(t, err, ErrTargetUserRequired)
	_, err = svc.Follow(ctx, 1, 1, "")
	assert.ErrorIs(t, err, ErrFollowSelf)
	_, err = svc.Follow(ctx, 1, 99, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.Follow(ctx, 1, 2, "block")
	assert.ErrorIs(t, err, ErrParamInvalid)
}
