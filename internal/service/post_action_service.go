package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/repository"
	"context"
	"fmt"
)

type PostActionService interface {
	ToggleLike(ctx context.Context, userID, postID uint64) (*dto.LikeResultDTO, error)
}

type PostActionServiceImpl struct {
	postRepo       repository.PostRepo
	postActionRepo repository.PostActionRepo
	userRepo       repository.UserRepo
	broker         realtime.Broker
	notifier       NotificationService
}

func NewPostActionService(
	postRepo repository.PostRepo,
	postActionRepo repository.PostActionRepo,
	userRepo repository.UserRepo,
	broker realtime.Broker,
	notifier NotificationService,
) PostActionService {
	return &PostActionServiceImpl{
		postRepo:       postRepo,
		postActionRepo: postActionRepo,
		userRepo:       userRepo,
		broker:         broker,
		notifier:       notifier,
	}
}

// ToggleLike flips the like state atomically and broadcasts the new count.
// Only a new like notifies the post owner.
func (s *PostActionServiceImpl) ToggleLike(ctx context.Context, userID, postID uint64) (*dto.LikeResultDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if postID == 0 {
		return nil, ErrParamInvalid
	}
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != model.StatusApproved {
		return nil, ErrPostNotFound
	}

	liked, count, err := s.postActionRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	runSideEffects(ctx, "toggle_like",
		func(ctx context.Context) error {
			s.broker.Broadcast(ctx, realtime.EventNewLike, &dto.LikeEventDTO{PostID: postID, LikeCount: count})
			return nil
		},
		func(ctx context.Context) error {
			if !liked || post.UserID == userID {
				return nil
			}
			s.notifier.Notify(ctx, &NotificationInput{
				RecipientID: post.UserID,
				SenderID:    userID,
				Title:       "New like",
				Message:     fmt.Sprintf("%s liked your post", actorName(ctx, s.userRepo, userID)),
				Kind:        model.KindLike,
				SourceID:    postID,
				SourceKind:  "post",
				Link:        postLink(postID),
			})
			return nil
		},
	)
	return &dto.LikeResultDTO{PostID: postID, Liked: liked, LikeCount: count}, nil
}
