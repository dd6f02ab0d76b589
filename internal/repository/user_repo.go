package repository

import (
	"Bastion/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User, roleNames ...string) error
	UpdateUserFields(ctx context.Context, id uint64, fields map[string]any) error
	GetUserRoleNames(ctx context.Context, id uint64) ([]string, error)
	SearchUsers(ctx context.Context, keyword string, limit int) ([]*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findOne(ctx, "username = ?", username)
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *UserRepoImpl) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := s.db.WithContext(ctx).Where(query, arg).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// CreateUser inserts the user and binds the named roles in one transaction
func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User, roleNames ...string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if len(roleNames) == 0 {
			return nil
		}
		var roles []model.Role
		if err := tx.Where("name IN ?", roleNames).Find(&roles).Error; err != nil {
			return err
		}
		for _, r := range roles {
			if err := tx.Create(&model.UserRole{UserID: user.ID, RoleID: r.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *UserRepoImpl) UpdateUserFields(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (s *UserRepoImpl) GetUserRoleNames(ctx context.Context, id uint64) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("user_roles").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", id).
		Pluck("roles.name", &names).Error
	return names, err
}

// SearchUsers LIKE match on username and fullname, used when no search cluster is configured
func (s *UserRepoImpl) SearchUsers(ctx context.Context, keyword string, limit int) ([]*model.User, error) {
	users := make([]*model.User, 0)
	like := "%" + keyword + "%"
	err := s.db.WithContext(ctx).
		Where("username LIKE ? OR fullname LIKE ?", like, like).
		Order("id").
		Limit(limit).
		Find(&users).Error
	return users, err
}
