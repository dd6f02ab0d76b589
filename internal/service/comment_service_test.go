package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/screening"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentNotifiesPostOwner(t *testing.T) {
	ctx := context.Background()
	broker := &recordingBroker{}
	notifications := &fakeNotificationRepo{}
	posts := newFakePostRepo(&model.Post{ID: 42, UserID: 2, Status: model.StatusApproved})
	actions := newFakePostActionRepo()
	svc := NewCommentService(posts, actions, testUsers(), allowAll(), broker, NewNotificationService(notifications, broker))

	comment, err := svc.AddComment(ctx, 1, 42, "  nice write-up  ")
	require.NoError(t, err)
	assert.Equal(t, "nice write-up", comment.Content)
	assert.Len(t, actions.comments, 1)

	topic := broker.byEvent(realtime.EventNewComment)
	require.Len(t, topic, 1)
	assert.Equal(t, "topic", topic[0].mode)
	assert.Equal(t, "post-42", topic[0].target)
	assert.Equal(t, uint64(42), topic[0].payload.(*dto.CommentEventDTO).PostID)

	require.Len(t, notifications.created, 1)
	n := notifications.created[0]
	assert.Equal(t, model.KindComment, n.Kind)
	assert.Equal(t, uint64(2), *n.RecipientID)
	assert.Equal(t, "Alice A commented on your post", n.Message)

	addressed := broker.byEvent(realtime.EventNewNotification)
	require.Len(t, addressed, 1)
	assert.Equal(t, uint64(2), addressed[0].target)
}

func TestAddCommentOnOwnPostSkipsNotification(t *testing.T) {
	broker := &recordingBroker{}
	notifications := &fakeNotificationRepo{}
	posts := newFakePostRepo(&model.Post{ID: 42, UserID: 1, Status: model.StatusApproved})
	svc := NewCommentService(posts, newFakePostActionRepo(), testUsers(), allowAll(), broker, NewNotificationService(notifications, broker))

	_, err := svc.AddComment(context.Background(), 1, 42, "replying to myself")
	require.NoError(t, err)
	assert.Empty(t, notifications.created)
	assert.Len(t, broker.byEvent(realtime.EventNewComment), 1)
}

func TestAddCommentBlocked(t *testing.T) {
	tests := []struct {
		name     string
		scorer   screening.Scorer
		text     string
		checkErr func(t *testing.T, err error)
	}{
		{
			name: "denylist",
			text: "retard",
			checkErr: func(t *testing.T, err error) {
				v, ok := screening.AsViolation(err)
				require.True(t, ok)
				assert.Equal(t, screening.ReasonHateSpeech, v.Reason)
			},
		},
		{
			name:   "toxic",
			scorer: denyScorer{},
			text:   "something mean",
			checkErr: func(t *testing.T, err error) {
				v, ok := screening.AsViolation(err)
				require.True(t, ok)
				assert.Equal(t, screening.ReasonToxic, v.Reason)
			},
		},
		{
			name:   "scorer down",
			scorer: brokenScorer{},
			text:   "perfectly fine",
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, screening.ErrUnavailable)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := &recordingBroker{}
			notifications := &fakeNotificationRepo{}
			actions := newFakePostActionRepo()
			posts := newFakePostRepo(&model.Post{ID: 42, UserID: 2, Status: model.StatusApproved})
			svc := NewCommentService(posts, actions, testUsers(), screening.NewGate(tt.scorer, 0.85), broker, NewNotificationService(notifications, broker))

			_, err := svc.AddComment(context.Background(), 1, 42, tt.text)
			tt.checkErr(t, err)
			assert.Empty(t, actions.comments)
			assert.Empty(t, notifications.created)
			assert.Empty(t, broker.events)
		})
	}
}

func TestAddCommentValidation(t *testing.T) {
	posts := newFakePostRepo(&model.Post{ID: 7, UserID: 2, Status: model.StatusPending})
	svc := NewCommentService(posts, newFakePostActionRepo(), testUsers(), allowAll(), &recordingBroker{}, nil)

	_, err := svc.AddComment(context.Background(), 0, 7, "hi")
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.AddComment(context.Background(), 1, 7, "   ")
	assert.ErrorIs(t, err, ErrCommentEmpty)

	_, err = svc.AddComment(context.Background(), 1, 7, "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteCommentOwnership(t *testing.T) {
	ctx := context.Background()
	broker := &recordingBroker{}
	actions := newFakePostActionRepo()
	require.NoError(t, actions.CreateComment(ctx, &model.PostComment{PostID: 42, UserID: 1, Content: "x"}))
	svc := NewCommentService(newFakePostRepo(), actions, testUsers(), allowAll(), broker, nil)

	_, err := svc.DeleteComment(ctx, 2, 501)
	assert.ErrorIs(t, err, ErrCommentDeleteForbidden)
	assert.Len(t, actions.comments, 1)
	assert.Empty(t, broker.events)

	ev, err := svc.DeleteComment(ctx, 1, 501)
	require.NoError(t, err)
	assert.Equal(t, &dto.CommentDeletedDTO{CommentID: 501, PostID: 42}, ev)
	assert.Empty(t, actions.comments)

	deleted := broker.byEvent(realtime.EventCommentDeleted)
	require.Len(t, deleted, 2)
	assert.Equal(t, "topic", deleted[0].mode)
	assert.Equal(t, "post-42", deleted[0].target)
	assert.Equal(t, "broadcast", deleted[1].mode)
	assert.Equal(t, ev, deleted[1].payload)
}

func TestModerateCommentRejectBroadcasts(t *testing.T) {
	ctx := context.Background()
	broker := &recordingBroker{}
	actions := newFakePostActionRepo()
	require.NoError(t, actions.CreateComment(ctx, &model.PostComment{PostID: 7, UserID: 2, Content: "x", Status: model.StatusPending}))
	svc := NewCommentService(newFakePostRepo(), actions, testUsers(), allowAll(), broker, nil)

	require.NoError(t, svc.ModerateComment(ctx, 501, model.StatusApproved))
	assert.Empty(t, broker.byEvent(realtime.EventCommentDeleted))

	require.NoError(t, svc.ModerateComment(ctx, 501, model.StatusRejected))
	assert.Equal(t, model.StatusRejected, actions.comments[501].Status)

	deleted := broker.byEvent(realtime.EventCommentDeleted)
	require.Len(t, deleted, 2)
	assert.Equal(t, "post-7", deleted[0].target)
	assert.Equal(t, "broadcast", deleted[1].mode)
	assert.Equal(t, &dto.CommentDeletedDTO{CommentID: 501, PostID: 7}, deleted[1].payload)

	assert.ErrorIs(t, svc.ModerateComment(ctx, 999, model.StatusRejected), ErrCommentNotFound)
	assert.ErrorIs(t, svc.ModerateComment(ctx, 501, "maybe"), ErrParamInvalid)
}
