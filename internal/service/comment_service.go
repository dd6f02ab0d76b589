package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/repository"
	"context"
	"fmt"
	"strings"
)

type CommentService interface {
	AddComment(ctx context.Context, userID, postID uint64, content string) (*dto.CommentDTO, error)
	ListComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) (*dto.CommentDeletedDTO, error)
	ListPending(ctx context.Context) ([]*dto.CommentDTO, error)
	ModerateComment(ctx context.Context, commentID uint64, status string) error
}

type CommentServiceImpl struct {
	postRepo       repository.PostRepo
	postActionRepo repository.PostActionRepo
	userRepo       repository.UserRepo
	screener       screening.Screener
	broker         realtime.Broker
	notifier       NotificationService
}

func NewCommentService(
	postRepo repository.PostRepo,
	postActionRepo repository.PostActionRepo,
	userRepo repository.UserRepo,
	screener screening.Screener,
	broker realtime.Broker,
	notifier NotificationService,
) CommentService {
	return &CommentServiceImpl{
		postRepo:       postRepo,
		postActionRepo: postActionRepo,
		userRepo:       userRepo,
		screener:       screener,
		broker:         broker,
		notifier:       notifier,
	}
}

// AddComment screens and stores a comment, pushes it to the post's topic and
// notifies the post owner unless they wrote it
func (s *CommentServiceImpl) AddComment(ctx context.Context, userID, postID uint64, content string) (*dto.CommentDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	content = strings.TrimSpace(content)
	if postID == 0 {
		return nil, ErrParamInvalid
	}
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if err := s.screener.Check(ctx, content); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != model.StatusApproved {
		return nil, ErrPostNotFound
	}

	comment := &model.PostComment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
		Status:  model.StatusApproved,
	}
	if err = s.postActionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	if full, err := s.postActionRepo.GetCommentByID(ctx, comment.ID); err == nil && full != nil {
		comment = full
	}
	item := toCommentDTO(comment)

	runSideEffects(ctx, "add_comment",
		func(ctx context.Context) error {
			s.broker.PublishToTopic(ctx, realtime.PostTopic(postID), realtime.EventNewComment, &dto.CommentEventDTO{PostID: postID, Comment: item})
			return nil
		},
		func(ctx context.Context) error {
			if post.UserID == userID {
				return nil
			}
			s.notifier.Notify(ctx, &NotificationInput{
				RecipientID: post.UserID,
				SenderID:    userID,
				Title:       "New comment",
				Message:     fmt.Sprintf("%s commented on your post", actorName(ctx, s.userRepo, userID)),
				Kind:        model.KindComment,
				SourceID:    postID,
				SourceKind:  "post",
				Link:        postLink(postID),
			})
			return nil
		},
	)
	return item, nil
}

func (s *CommentServiceImpl) ListComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	comments, err := s.postActionRepo.ListComments(ctx, postID, model.StatusApproved)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		items = append(items, toCommentDTO(c))
	}
	return items, nil
}

func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) (*dto.CommentDeletedDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if commentID == 0 {
		return nil, ErrParamInvalid
	}
	comment, err := s.postActionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrCommentDeleteForbidden
	}

	if err = s.postActionRepo.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}

	ev := &dto.CommentDeletedDTO{CommentID: commentID, PostID: comment.PostID}
	runSideEffects(ctx, "delete_comment", func(ctx context.Context) error {
		s.broker.PublishToTopic(ctx, realtime.PostTopic(comment.PostID), realtime.EventCommentDeleted, ev)
		s.broker.Broadcast(ctx, realtime.EventCommentDeleted, ev)
		return nil
	})
	return ev, nil
}

func (s *CommentServiceImpl) ListPending(ctx context.Context) ([]*dto.CommentDTO, error) {
	comments, err := s.postActionRepo.ListCommentsByStatus(ctx, model.StatusPending, consts.ModerationQueueCap)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		items = append(items, toCommentDTO(c))
	}
	return items, nil
}

func (s *CommentServiceImpl) ModerateComment(ctx context.Context, commentID uint64, status string) error {
	if status != model.StatusApproved && status != model.StatusRejected {
		return ErrParamInvalid
	}
	comment, err := s.postActionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if err = s.postActionRepo.UpdateCommentStatus(ctx, commentID, status); err != nil {
		return err
	}
	if status == model.StatusRejected {
		runSideEffects(ctx, "moderate_comment", func(ctx context.Context) error {
			ev := &dto.CommentDeletedDTO{CommentID: commentID, PostID: comment.PostID}
			s.broker.PublishToTopic(ctx, realtime.PostTopic(comment.PostID), realtime.EventCommentDeleted, ev)
			s.broker.Broadcast(ctx, realtime.EventCommentDeleted, ev)
			return nil
		})
	}
	return nil
}
