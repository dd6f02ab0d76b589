package repository

import (
	"Bastion/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id uint64) (*model.Notification, error)
	ListForUser(ctx context.Context, userID uint64, limit int) ([]*model.Notification, error)
	ListUniversal(ctx context.Context, limit int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, id, userID uint64) (int64, error)
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, id, userID uint64) (int64, error)
	PurgeReadBefore(ctx context.Context, before time.Time) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db: db}
}

func (s *NotificationRepoImpl) Create(ctx context.Context, n *model.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *NotificationRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Notification, error) {
	n := &model.Notification{}
	if err := s.db.WithContext(ctx).First(n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}

func (s *NotificationRepoImpl) ListForUser(ctx context.Context, userID uint64, limit int) ([]*model.Notification, error) {
	list := make([]*model.Notification, 0)
	err := s.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (s *NotificationRepoImpl) ListUniversal(ctx context.Context, limit int) ([]*model.Notification, error) {
	list := make([]*model.Notification, 0)
	err := s.db.WithContext(ctx).
		Where("is_universal = ?", true).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (s *NotificationRepoImpl) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead only touches rows owned by userID; zero rows means not found for that user
func (s *NotificationRepoImpl) MarkRead(ctx context.Context, id, userID uint64) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (s *NotificationRepoImpl) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (s *NotificationRepoImpl) Delete(ctx context.Context, id, userID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, userID).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

// PurgeReadBefore drops read, addressed notifications older than before
func (s *NotificationRepoImpl) PurgeReadBefore(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("is_read = ? AND is_universal = ? AND created_at < ?", true, false, before).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
