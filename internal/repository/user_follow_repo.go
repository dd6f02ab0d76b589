package repository

import (
	"Bastion/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserFollowRepo interface {
	ToggleUserFollow(ctx context.Context, followerID, followingID uint64) (following bool, err error)
	CreateUserFollow(ctx context.Context, followerID, followingID uint64) (created bool, err error)
	DeleteUserFollow(ctx context.Context, followerID, followingID uint64) (deleted bool, err error)
	GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
	FilterFollowing(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db: db}
}

// ToggleUserFollow inserts the edge, deleting it instead when it already exists
func (s *UserFollowRepoImpl) ToggleUserFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	err := s.db.WithContext(ctx).Create(&model.UserFollow{FollowerID: followerID, FollowingID: followingID}).Error
	if err == nil {
		return true, nil
	}
	if !IsDuplicateError(err) {
		return false, err
	}
	_, err = s.DeleteUserFollow(ctx, followerID, followingID)
	return false, err
}

// CreateUserFollow is idempotent; created is false when the edge already existed
func (s *UserFollowRepoImpl) CreateUserFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserFollow{FollowerID: followerID, FollowingID: followingID})
	return result.RowsAffected > 0, result.Error
}

func (s *UserFollowRepoImpl) DeleteUserFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{})
	return result.RowsAffected > 0, result.Error
}

func (s *UserFollowRepoImpl) GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	var userFollows []*model.UserFollow
	err := s.db.WithContext(ctx).
		Where("following_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&userFollows).Error
	return userFollows, err
}

func (s *UserFollowRepoImpl) GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	var userFollows []*model.UserFollow
	err := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&userFollows).Error
	return userFollows, err
}

func (s *UserFollowRepoImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *UserFollowRepoImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

// FilterFollowing returns the subset of candidateIDs that followerID follows
func (s *UserFollowRepoImpl) FilterFollowing(ctx context.Context, followerID uint64, candidateIDs []uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	if len(candidateIDs) == 0 {
		return ids, nil
	}
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids).Error
	return ids, err
}
