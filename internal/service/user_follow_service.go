package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/repository"
	"context"
	"fmt"
)

type UserFollowService interface {
	// Follow toggles the edge unless action forces a direction
	Follow(ctx context.Context, followerID, followingID uint64, action string) (*dto.FollowResultDTO, error)
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Author, error)
	GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Author, error)
}

type UserFollowServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	userRepo       repository.UserRepo
	broker         realtime.Broker
	notifier       NotificationService
}

func NewUserFollowService(
	userFollowRepo repository.UserFollowRepo,
	userRepo repository.UserRepo,
	broker realtime.Broker,
	notifier NotificationService,
) UserFollowService {
	return &UserFollowServiceImpl{
		userFollowRepo: userFollowRepo,
		userRepo:       userRepo,
		broker:         broker,
		notifier:       notifier,
	}
}

func (s *UserFollowServiceImpl) Follow(ctx context.Context, followerID, followingID uint64, action string) (*dto.FollowResultDTO, error) {
	if followerID == 0 {
		return nil, ErrAuthRequired
	}
	if followingID == 0 {
		return nil, ErrTargetUserRequired
	}
	if followerID == followingID {
		return nil, ErrFollowSelf
	}
	target, err := s.userRepo.GetUserById(ctx, followingID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	var following, created bool
	switch action {
	case "":
		following, err = s.userFollowRepo.ToggleUserFollow(ctx, followerID, followingID)
		created = following
	case dto.FollowActionFollow:
		created, err = s.userFollowRepo.CreateUserFollow(ctx, followerID, followingID)
		following = true
	case dto.FollowActionUnfollow:
		_, err = s.userFollowRepo.DeleteUserFollow(ctx, followerID, followingID)
	default:
		return nil, ErrParamInvalid
	}
	if err != nil {
		return nil, err
	}

	result := &dto.FollowResultDTO{
		FollowerID:  followerID,
		FollowingID: followingID,
		Action:      dto.FollowActionUnfollow,
		Following:   following,
	}
	if following {
		result.Action = dto.FollowActionFollow
	}

	runSideEffects(ctx, "follow",
		func(ctx context.Context) error {
			s.broker.Broadcast(ctx, realtime.EventFollowUpdate, result)
			return nil
		},
		func(ctx context.Context) error {
			if !created {
				return nil
			}
			follower, err := s.userRepo.GetUserById(ctx, followerID)
			if err != nil {
				return fmt.Errorf("load follower %d: %w", followerID, err)
			}
			if follower == nil {
				return nil
			}
			s.notifier.Notify(ctx, &NotificationInput{
				RecipientID: followingID,
				SenderID:    followerID,
				Title:       "New follower",
				Message:     fmt.Sprintf("@%s started following you", follower.Username),
				Kind:        model.KindFollow,
				SourceID:    followerID,
				SourceKind:  "user",
				Link:        fmt.Sprintf("/profile/%d", followerID),
			})
			return nil
		},
	)
	return result, nil
}

func (s *UserFollowServiceImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Author, error) {
	edges, err := s.userFollowRepo.GetUserFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FollowerID)
	}
	return s.authors(ctx, ids)
}

func (s *UserFollowServiceImpl) GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Author, error) {
	edges, err := s.userFollowRepo.GetUserFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FollowingID)
	}
	return s.authors(ctx, ids)
}

// authors keeps the order of ids
func (s *UserFollowServiceImpl) authors(ctx context.Context, ids []uint64) ([]*model.Author, error) {
	if len(ids) == 0 {
		return []*model.Author{}, nil
	}
	users, err := s.userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	res := make([]*model.Author, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			res = append(res, authorOf(u))
		}
	}
	return res, nil
}
