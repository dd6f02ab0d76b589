package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/kafka"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/screening"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostBroadcastsAndEmits(t *testing.T) {
	broker := &recordingBroker{}
	producer := &recordingProducer{}
	posts := newFakePostRepo()
	svc := NewPostService(posts, newFakePostActionRepo(), nil, allowAll(), broker, producer)

	item, err := svc.CreatePost(context.Background(), 1, &dto.CreatePostDTO{Title: " Patch Tuesday ", Content: "Update your boxes"})
	require.NoError(t, err)
	assert.Equal(t, "Patch Tuesday", item.Title)
	assert.Equal(t, model.StatusApproved, item.Status)
	assert.Equal(t, 1, posts.created)

	newPost := broker.byEvent(realtime.EventNewPost)
	require.Len(t, newPost, 1)
	assert.Equal(t, "broadcast", newPost[0].mode)
	assert.Equal(t, item.ID, newPost[0].payload.(*dto.PostDTO).ID)

	require.Len(t, producer.events, 1)
	assert.Equal(t, kafka.EventPostCreated, producer.events[0].Type)
	assert.Equal(t, item.ID, producer.events[0].EntityID)
}

func TestCreatePostBlockedLeavesNoTrace(t *testing.T) {
	broker := &recordingBroker{}
	producer := &recordingProducer{}
	posts := newFakePostRepo()
	svc := NewPostService(posts, newFakePostActionRepo(), nil, screening.NewGate(denyScorer{}, 0.85), broker, producer)

	_, err := svc.CreatePost(context.Background(), 1, &dto.CreatePostDTO{Title: "hello", Content: "world"})
	_, ok := screening.AsViolation(err)
	assert.True(t, ok)
	assert.Zero(t, posts.created)
	assert.Empty(t, broker.events)
	assert.Empty(t, producer.events)
}

func TestCreatePostRequiresText(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), newFakePostActionRepo(), nil, allowAll(), &recordingBroker{}, kafka.NopProducer{})

	_, err := svc.CreatePost(context.Background(), 1, &dto.CreatePostDTO{Title: " ", Content: "\n"})
	assert.ErrorIs(t, err, ErrPostEmpty)
	assert.Equal(t, "Post must contain title or content.", err.Error())

	_, err = svc.CreatePost(context.Background(), 0, &dto.CreatePostDTO{Title: "x"})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestDeletePostOwnership(t *testing.T) {
	broker := &recordingBroker{}
	posts := newFakePostRepo(&model.Post{ID: 9, UserID: 1, Status: model.StatusApproved})
	svc := NewPostService(posts, newFakePostActionRepo(), nil, allowAll(), broker, kafka.NopProducer{})

	err := svc.DeletePost(context.Background(), 2, 9)
	assert.ErrorIs(t, err, ErrPostDeleteForbidden)
	assert.Empty(t, posts.deleted)
	assert.Empty(t, broker.events)

	require.NoError(t, svc.DeletePost(context.Background(), 1, 9))
	assert.Equal(t, []uint64{9}, posts.deleted)
	deleted := broker.byEvent(realtime.EventPostDeleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, uint64(9), deleted[0].payload)

	assert.ErrorIs(t, svc.DeletePost(context.Background(), 1, 9), ErrPostNotFound)
}

func TestCreatePostDenylistIgnoresScorer(t *testing.T) {
	broker := &recordingBroker{}
	posts := newFakePostRepo()
	// brokenScorer would fail closed; the denylist must reject first
	svc := NewPostService(posts, newFakePostActionRepo(), nil, screening.NewGate(brokenScorer{}, 0.85), broker, kafka.NopProducer{})

	_, err := svc.CreatePost(context.Background(), 1, &dto.CreatePostDTO{Content: "you fag"})
	v, ok := screening.AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, screening.ReasonHateSpeech, v.Reason)
	assert.Zero(t, posts.created)
	assert.Empty(t, broker.events)
}
