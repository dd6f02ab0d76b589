package repository

import (
	"Bastion/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// CommunityWithCount list row carrying the member count
type CommunityWithCount struct {
	model.Community
	MemberCount int64 `json:"memberCount"`
}

type CommunityRepo interface {
	CreateCommunity(ctx context.Context, c *model.Community) error
	GetCommunityByID(ctx context.Context, id uint64) (*model.Community, error)
	GetCommunityByName(ctx context.Context, name string) (*model.Community, error)
	ListCommunities(ctx context.Context, limit int) ([]*CommunityWithCount, error)
	UpdateCommunityFields(ctx context.Context, id uint64, fields map[string]any) error
	DeleteCommunity(ctx context.Context, id uint64) error

	AddMember(ctx context.Context, m *model.CommunityMember) error
	RemoveMember(ctx context.Context, communityID, userID uint64) (int64, error)
	GetMember(ctx context.Context, communityID, userID uint64) (*model.CommunityMember, error)
	ListMembers(ctx context.Context, communityID uint64) ([]*model.CommunityMember, error)
	CountMembers(ctx context.Context, communityID uint64) (int64, error)
	UpdateMemberRole(ctx context.Context, communityID, userID uint64, role string) error
}

type CommunityRepoImpl struct {
	db *gorm.DB
}

func NewCommunityRepo(db *gorm.DB) CommunityRepo {
	return &CommunityRepoImpl{db: db}
}

// CreateCommunity stores the community and enrolls its creator as admin
func (s *CommunityRepoImpl) CreateCommunity(ctx context.Context, c *model.Community) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&model.CommunityMember{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
			Role:        model.MemberRoleAdmin,
		}).Error
	})
}

func (s *CommunityRepoImpl) GetCommunityByID(ctx context.Context, id uint64) (*model.Community, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *CommunityRepoImpl) GetCommunityByName(ctx context.Context, name string) (*model.Community, error) {
	return s.findOne(ctx, "name = ?", name)
}

func (s *CommunityRepoImpl) findOne(ctx context.Context, query string, arg any) (*model.Community, error) {
	c := &model.Community{}
	if err := s.db.WithContext(ctx).Where(query, arg).First(c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *CommunityRepoImpl) ListCommunities(ctx context.Context, limit int) ([]*CommunityWithCount, error) {
	rows := make([]*CommunityWithCount, 0)
	err := s.db.WithContext(ctx).
		Table("communities AS c").
		Select("c.*, COUNT(m.user_id) AS member_count").
		Joins("LEFT JOIN community_members m ON m.community_id = c.id").
		Group("c.id").
		Order("member_count DESC, c.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (s *CommunityRepoImpl) UpdateCommunityFields(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.Community{}).Where("id = ?", id).Updates(fields).Error
}

func (s *CommunityRepoImpl) DeleteCommunity(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", id).Delete(&model.CommunityMember{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Post{}).Where("community_id = ?", id).Update("community_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Community{}, id).Error
	})
}

// AddMember fails with a duplicate-key error when the user is already a member
func (s *CommunityRepoImpl) AddMember(ctx context.Context, m *model.CommunityMember) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *CommunityRepoImpl) RemoveMember(ctx context.Context, communityID, userID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.CommunityMember{})
	return result.RowsAffected, result.Error
}

func (s *CommunityRepoImpl) GetMember(ctx context.Context, communityID, userID uint64) (*model.CommunityMember, error) {
	m := &model.CommunityMember{}
	err := s.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (s *CommunityRepoImpl) ListMembers(ctx context.Context, communityID uint64) ([]*model.CommunityMember, error) {
	members := make([]*model.CommunityMember, 0)
	err := s.db.WithContext(ctx).Preload("User").
		Where("community_id = ?", communityID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

func (s *CommunityRepoImpl) CountMembers(ctx context.Context, communityID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

func (s *CommunityRepoImpl) UpdateMemberRole(ctx context.Context, communityID, userID uint64, role string) error {
	return s.db.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Update("role", role).Error
}
