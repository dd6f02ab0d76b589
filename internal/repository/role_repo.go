package repository

import (
	"Bastion/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepo interface {
	EnsureRoles(ctx context.Context, names ...string) error
	AssignRole(ctx context.Context, userID uint64, name string) error
}

type RoleRepoImpl struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepo {
	return &RoleRepoImpl{
		db: db,
	}
}

// EnsureRoles creates any missing role rows
func (s *RoleRepoImpl) EnsureRoles(ctx context.Context, names ...string) error {
	for _, name := range names {
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Role{Name: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *RoleRepoImpl) AssignRole(ctx context.Context, userID uint64, name string) error {
	var role model.Role
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRole{UserID: userID, RoleID: role.ID}).Error
}
