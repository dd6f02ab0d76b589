package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AIMessageRepo interface {
	SaveMessages(ctx context.Context, msgs ...*AIMessage) error
	GetHistory(ctx context.Context, userID uint64, limit int) ([]*AIMessage, error)
}

type aiMessageRepoImpl struct {
	col *mongo.Collection
}

func NewAIMessageRepo(db *mongo.Database) AIMessageRepo {
	return &aiMessageRepoImpl{
		col: db.Collection("ai_messages"),
	}
}

func (s *aiMessageRepoImpl) SaveMessages(ctx context.Context, msgs ...*AIMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(msgs))
	now := time.Now()
	for i, m := range msgs {
		if m.CreatedAt.IsZero() {
			// keep insertion order stable when both turns land in the same instant
			m.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
		docs = append(docs, m)
	}
	_, err := s.col.InsertMany(ctx, docs)
	return err
}

// GetHistory returns the latest limit messages, oldest first
func (s *aiMessageRepoImpl) GetHistory(ctx context.Context, userID uint64, limit int) ([]*AIMessage, error) {
	if limit <= 0 {
		limit = 20
	}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	messages := make([]*AIMessage, 0)
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
