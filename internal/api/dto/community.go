package dto

import "Bastion/internal/model"

type CreateCommunityDTO struct {
	Name        string `json:"name,omitempty" validate:"omitempty,community_name"`
	DisplayName string `json:"display_name" binding:"required" validate:"max=100"`
	Description string `json:"description,omitempty"`
	Rules       string `json:"rules,omitempty"`
	Icon        string `json:"icon,omitempty" validate:"omitempty,max=500"`
	Banner      string `json:"banner,omitempty" validate:"omitempty,max=500"`
	IsPrivate   bool   `json:"is_private,omitempty"`
}

type UpdateCommunityDTO struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	Rules       *string `json:"rules,omitempty"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=500"`
	Banner      *string `json:"banner,omitempty" validate:"omitempty,max=500"`
	IsPrivate   *bool   `json:"is_private,omitempty"`
}

type UpdateMemberRoleDTO struct {
	Role string `json:"role" binding:"required"`
}

type CommunityDTO struct {
	model.Community
	MemberCount int64 `json:"memberCount"`
	IsMember    bool  `json:"isMember"`
}
