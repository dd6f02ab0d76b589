package repository

import (
	"Bastion/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	ToggleLike(ctx context.Context, userID, postID uint64) (liked bool, likeCount int64, err error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error)

	CreateComment(ctx context.Context, comment *model.PostComment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.PostComment, error)
	DeleteComment(ctx context.Context, commentID uint64) error
	UpdateCommentStatus(ctx context.Context, commentID uint64, status string) error
	ListComments(ctx context.Context, postID uint64, status string) ([]*model.PostComment, error)
	ListCommentsByStatus(ctx context.Context, status string, limit int) ([]*model.PostComment, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

// ToggleLike inserts the like row and falls back to deleting it when the key already exists.
// The counter moves in the same transaction so like_count always matches the row count.
func (s *PostActionRepoImpl) ToggleLike(ctx context.Context, userID, postID uint64) (bool, int64, error) {
	var liked bool
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&model.Like{UserID: userID, PostID: postID}).Error
		switch {
		case err == nil:
			liked = true
			err = tx.Model(&model.Post{}).Where("id = ?", postID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
		case IsDuplicateError(err):
			res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				err = tx.Model(&model.Post{}).Where("id = ?", postID).
					UpdateColumn("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
			} else {
				err = nil
			}
		}
		if err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("id = ?", postID).Pluck("like_count", &count).Error
	})
	return liked, count, err
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetLikedPostIDs filters postIDs down to the ones userID has liked
func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	if len(postIDs) == 0 {
		return ids, nil
	}
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (s *PostActionRepoImpl) CreateComment(ctx context.Context, comment *model.PostComment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *PostActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.PostComment, error) {
	comment := &model.PostComment{}
	err := s.db.WithContext(ctx).Preload("User").First(comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

func (s *PostActionRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.PostComment{}, commentID).Error
}

func (s *PostActionRepoImpl) UpdateCommentStatus(ctx context.Context, commentID uint64, status string) error {
	return s.db.WithContext(ctx).Model(&model.PostComment{}).
		Where("id = ?", commentID).
		Update("status", status).Error
}

// ListComments oldest first
func (s *PostActionRepoImpl) ListComments(ctx context.Context, postID uint64, status string) ([]*model.PostComment, error) {
	comments := make([]*model.PostComment, 0)
	err := s.db.WithContext(ctx).Preload("User").
		Where("post_id = ? AND status = ?", postID, status).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (s *PostActionRepoImpl) ListCommentsByStatus(ctx context.Context, status string, limit int) ([]*model.PostComment, error) {
	comments := make([]*model.PostComment, 0)
	err := s.db.WithContext(ctx).Preload("User").Preload("Post").
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}
