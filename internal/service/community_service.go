package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/pkg/util"
	"Bastion/internal/repository"
	"context"
	"strings"

	"github.com/gosimple/slug"
)

type CommunityService interface {
	CreateCommunity(ctx context.Context, userID uint64, req *dto.CreateCommunityDTO) (*dto.CommunityDTO, error)
	ListCommunities(ctx context.Context) ([]*repository.CommunityWithCount, error)
	// GetCommunity accepts a numeric id or a community name
	GetCommunity(ctx context.Context, viewerID uint64, ref string) (*dto.CommunityDTO, error)
	UpdateCommunity(ctx context.Context, userID uint64, ref string, req *dto.UpdateCommunityDTO) (*dto.CommunityDTO, error)
	DeleteCommunity(ctx context.Context, userID uint64, ref string) error
	Join(ctx context.Context, userID uint64, ref string) error
	Leave(ctx context.Context, userID uint64, ref string) error
	ListMembers(ctx context.Context, ref string) ([]*model.CommunityMember, error)
	UpdateMemberRole(ctx context.Context, userID uint64, ref string, memberID uint64, role string) error
}

type CommunityServiceImpl struct {
	communityRepo repository.CommunityRepo
	screener      screening.Screener
}

func NewCommunityService(communityRepo repository.CommunityRepo, screener screening.Screener) CommunityService {
	return &CommunityServiceImpl{communityRepo: communityRepo, screener: screener}
}

func (s *CommunityServiceImpl) CreateCommunity(ctx context.Context, userID uint64, req *dto.CreateCommunityDTO) (*dto.CommunityDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, ErrParamInvalid
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = communityNameFrom(displayName)
	}
	if !util.IsValidCommunityName(name) {
		return nil, ErrCommunityNameInvalid
	}
	if err := s.screener.Check(ctx, displayName, req.Description, req.Rules); err != nil {
		return nil, err
	}

	existing, err := s.communityRepo.GetCommunityByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCommunityNameTaken
	}

	community := &model.Community{
		Name:        name,
		DisplayName: displayName,
		Description: req.Description,
		Rules:       req.Rules,
		Icon:        req.Icon,
		Banner:      req.Banner,
		CreatorID:   userID,
		IsPrivate:   req.IsPrivate,
	}
	if err = s.communityRepo.CreateCommunity(ctx, community); err != nil {
		if repository.IsDuplicateError(err) {
			return nil, ErrCommunityNameTaken
		}
		return nil, err
	}
	return &dto.CommunityDTO{Community: *community, MemberCount: 1, IsMember: true}, nil
}

func (s *CommunityServiceImpl) ListCommunities(ctx context.Context) ([]*repository.CommunityWithCount, error) {
	return s.communityRepo.ListCommunities(ctx, consts.MaxPageSize)
}

func (s *CommunityServiceImpl) GetCommunity(ctx context.Context, viewerID uint64, ref string) (*dto.CommunityDTO, error) {
	community, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, viewerID, community)
}

func (s *CommunityServiceImpl) UpdateCommunity(ctx context.Context, userID uint64, ref string, req *dto.UpdateCommunityDTO) (*dto.CommunityDTO, error) {
	community, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err = s.requireManager(ctx, userID, community); err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	var screened []string
	if req.DisplayName != nil {
		v := strings.TrimSpace(*req.DisplayName)
		if v == "" {
			return nil, ErrParamInvalid
		}
		fields["display_name"] = v
		community.DisplayName = v
		screened = append(screened, v)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		community.Description = *req.Description
		screened = append(screened, *req.Description)
	}
	if req.Rules != nil {
		fields["rules"] = *req.Rules
		community.Rules = *req.Rules
		screened = append(screened, *req.Rules)
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
		community.Icon = *req.Icon
	}
	if req.Banner != nil {
		fields["banner"] = *req.Banner
		community.Banner = *req.Banner
	}
	if req.IsPrivate != nil {
		fields["is_private"] = *req.IsPrivate
		community.IsPrivate = *req.IsPrivate
	}
	if len(fields) == 0 {
		return nil, ErrParamInvalid
	}
	if err = s.screener.Check(ctx, screened...); err != nil {
		return nil, err
	}

	if err = s.communityRepo.UpdateCommunityFields(ctx, community.ID, fields); err != nil {
		return nil, err
	}
	return s.detail(ctx, userID, community)
}

func (s *CommunityServiceImpl) DeleteCommunity(ctx context.Context, userID uint64, ref string) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	community, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if community.CreatorID != userID {
		return ErrCommunityDeleteDenied
	}
	return s.communityRepo.DeleteCommunity(ctx, community.ID)
}

func (s *CommunityServiceImpl) Join(ctx context.Context, userID uint64, ref string) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	community, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	err = s.communityRepo.AddMember(ctx, &model.CommunityMember{
		CommunityID: community.ID,
		UserID:      userID,
		Role:        model.MemberRoleMember,
	})
	if err != nil {
		if repository.IsDuplicateError(err) {
			return ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (s *CommunityServiceImpl) Leave(ctx context.Context, userID uint64, ref string) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	community, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if community.CreatorID == userID {
		return ErrCreatorCannotLeave
	}
	rows, err := s.communityRepo.RemoveMember(ctx, community.ID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotMember
	}
	return nil
}

func (s *CommunityServiceImpl) ListMembers(ctx context.Context, ref string) ([]*model.CommunityMember, error) {
	community, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.communityRepo.ListMembers(ctx, community.ID)
}

func (s *CommunityServiceImpl) UpdateMemberRole(ctx context.Context, userID uint64, ref string, memberID uint64, role string) error {
	switch role {
	case model.MemberRoleMember, model.MemberRoleModerator, model.MemberRoleAdmin:
	default:
		return ErrMemberRoleInvalid
	}
	community, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err = s.requireManager(ctx, userID, community); err != nil {
		return err
	}
	if memberID == community.CreatorID {
		return ErrCreatorRoleLocked
	}
	member, err := s.communityRepo.GetMember(ctx, community.ID, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	return s.communityRepo.UpdateMemberRole(ctx, community.ID, memberID, role)
}

func (s *CommunityServiceImpl) resolve(ctx context.Context, ref string) (*model.Community, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrParamInvalid
	}
	var (
		community *model.Community
		err       error
	)
	if id := util.ParseID(ref); id != 0 {
		if community, err = s.communityRepo.GetCommunityByID(ctx, id); err != nil {
			return nil, err
		}
	}
	// names may be all digits, e.g. "2024"
	if community == nil {
		if community, err = s.communityRepo.GetCommunityByName(ctx, ref); err != nil {
			return nil, err
		}
	}
	if community == nil {
		return nil, ErrCommunityNotFound
	}
	return community, nil
}

// requireManager allows the creator and members with the admin role
func (s *CommunityServiceImpl) requireManager(ctx context.Context, userID uint64, c *model.Community) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if c.CreatorID == userID {
		return nil
	}
	member, err := s.communityRepo.GetMember(ctx, c.ID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Role != model.MemberRoleAdmin {
		return ErrCommunityForbidden
	}
	return nil
}

func (s *CommunityServiceImpl) detail(ctx context.Context, viewerID uint64, c *model.Community) (*dto.CommunityDTO, error) {
	count, err := s.communityRepo.CountMembers(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	item := &dto.CommunityDTO{Community: *c, MemberCount: count}
	if viewerID != 0 {
		member, err := s.communityRepo.GetMember(ctx, c.ID, viewerID)
		if err != nil {
			return nil, err
		}
		item.IsMember = member != nil
	}
	return item, nil
}

// communityNameFrom derives a valid name from a display name, e.g. "Go Devs!" -> "go-devs"
func communityNameFrom(displayName string) string {
	name := slug.Make(displayName)
	if len(name) > 30 {
		name = strings.TrimRight(name[:30], "-")
	}
	return name
}
