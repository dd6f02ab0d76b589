package kafka

import (
	"Bastion/internal/model"
	"Bastion/internal/pkg/es"
	"Bastion/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostDB struct {
	repository.PostRepo
	posts map[uint64]*model.Post
}

func (r *stubPostDB) GetPostByID(_ context.Context, id uint64) (*model.Post, error) {
	return r.posts[id], nil
}

type stubUserDB struct {
	repository.UserRepo
	err error
}

func (r *stubUserDB) GetUserById(context.Context, uint64) (*model.User, error) {
	return nil, r.err
}

type recordingPostIndex struct {
	es.PostRepo
	indexed []uint64
	deleted []uint64
}

func (r *recordingPostIndex) IndexPost(_ context.Context, p *model.Post) error {
	r.indexed = append(r.indexed, p.ID)
	return nil
}

func (r *recordingPostIndex) DeletePost(_ context.Context, id uint64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func message(t *testing.T, ev ActivityEvent) *sarama.ConsumerMessage {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Value: b}
}

func TestIndexHandlerSyncsPosts(t *testing.T) {
	ctx := context.Background()
	index := &recordingPostIndex{}
	h := NewIndexHandler(&stubPostDB{posts: map[uint64]*model.Post{
		1: {ID: 1, Status: model.StatusApproved},
		2: {ID: 2, Status: model.StatusRejected},
	}}, &stubUserDB{}, index, nil)

	require.NoError(t, h.logic(ctx, message(t, ActivityEvent{Type: EventPostCreated, EntityID: 1})))
	require.NoError(t, h.logic(ctx, message(t, ActivityEvent{Type: EventPostUpdated, EntityID: 2})))
	require.NoError(t, h.logic(ctx, message(t, ActivityEvent{Type: EventPostCreated, EntityID: 3})))
	require.NoError(t, h.logic(ctx, message(t, ActivityEvent{Type: EventPostDeleted, EntityID: 4})))

	assert.Equal(t, []uint64{1}, index.indexed)
	assert.Equal(t, []uint64{2, 3, 4}, index.deleted)
}

func TestIndexHandlerSkipsGarbageAndSurfacesLoadErrors(t *testing.T) {
	ctx := context.Background()
	h := NewIndexHandler(&stubPostDB{}, &stubUserDB{err: errors.New("db gone")}, &recordingPostIndex{}, nil)

	assert.NoError(t, h.logic(ctx, &sarama.ConsumerMessage{Value: []byte("{not json")}))
	assert.NoError(t, h.logic(ctx, message(t, ActivityEvent{Type: "comment.created", EntityID: 1})))

	err := h.logic(ctx, message(t, ActivityEvent{Type: EventUserUpdated, EntityID: 7}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load user 7")
}
