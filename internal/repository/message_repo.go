package repository

import (
	"Bastion/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type MessageRepo interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	GetMessageByID(ctx context.Context, id uint64) (*model.Message, error)
	MarkRead(ctx context.Context, id uint64) error
	MarkReadFrom(ctx context.Context, receiverID, senderID uint64) (int64, error)
	GetThread(ctx context.Context, userID, peerID uint64, limit int) ([]*model.Message, error)
	GetLatestPerPeer(ctx context.Context, userID uint64, limit int) ([]*model.Message, error)
	CountUnread(ctx context.Context, receiverID uint64) (int64, error)
}

type MessageRepoImpl struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &MessageRepoImpl{db: db}
}

func (s *MessageRepoImpl) CreateMessage(ctx context.Context, msg *model.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *MessageRepoImpl) GetMessageByID(ctx context.Context, id uint64) (*model.Message, error) {
	msg := &model.Message{}
	if err := s.db.WithContext(ctx).First(msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return msg, nil
}

func (s *MessageRepoImpl) MarkRead(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkReadFrom flags every unread message from senderID to receiverID as read
func (s *MessageRepoImpl) MarkReadFrom(ctx context.Context, receiverID, senderID uint64) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// GetThread both directions between two users, oldest first
func (s *MessageRepoImpl) GetThread(ctx context.Context, userID, peerID uint64, limit int) ([]*model.Message, error) {
	msgs := make([]*model.Message, 0)
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userID, peerID, peerID, userID).
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// GetLatestPerPeer newest message of each conversation the user takes part in
func (s *MessageRepoImpl) GetLatestPerPeer(ctx context.Context, userID uint64, limit int) ([]*model.Message, error) {
	msgs := make([]*model.Message, 0)
	latest := s.db.Model(&model.Message{}).
		Select("MAX(id)").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("LEAST(sender_id, receiver_id), GREATEST(sender_id, receiver_id)")
	err := s.db.WithContext(ctx).
		Where("id IN (?)", latest).
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (s *MessageRepoImpl) CountUnread(ctx context.Context, receiverID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}
