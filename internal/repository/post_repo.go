package repository

import (
	"Bastion/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id uint64) (*model.Post, error)
	GetPostsByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	UpdatePostFields(ctx context.Context, id uint64, fields map[string]any) error
	DeletePost(ctx context.Context, id uint64) error
	ListApproved(ctx context.Context, beforeID uint64, limit int) ([]*model.Post, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*model.Post, error)
	SearchPosts(ctx context.Context, keyword string, limit int) ([]*model.Post, error)
	ReconcileLikeCounts(ctx context.Context) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// GetPostByID returns nil, nil when the post does not exist
func (s *PostRepoImpl) GetPostByID(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).Preload("User").First(post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (s *PostRepoImpl) GetPostsByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) UpdatePostFields(ctx context.Context, id uint64, fields map[string]any) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error
}

// DeletePost removes the post together with its likes and comments
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

// ListApproved keyset page of the public feed, newest first; beforeID 0 starts from the top
func (s *PostRepoImpl) ListApproved(ctx context.Context, beforeID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	q := s.db.WithContext(ctx).Preload("User").Where("status = ?", model.StatusApproved)
	if beforeID > 0 {
		q = q.Where("id < ?", beforeID)
	}
	err := q.Order("id DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) ListByStatus(ctx context.Context, status string, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).Preload("User").
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	like := "%" + keyword + "%"
	err := s.db.WithContext(ctx).Preload("User").
		Where("status = ?", model.StatusApproved).
		Where("title LIKE ? OR content LIKE ?", like, like).
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ReconcileLikeCounts rewrites like_count wherever it drifted from the likes table
func (s *PostRepoImpl) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Exec(`
UPDATE posts p
LEFT JOIN (SELECT post_id, COUNT(*) AS cnt FROM likes GROUP BY post_id) l ON l.post_id = p.id
SET p.like_count = COALESCE(l.cnt, 0)
WHERE p.like_count <> COALESCE(l.cnt, 0)`)
	return result.RowsAffected, result.Error
}
