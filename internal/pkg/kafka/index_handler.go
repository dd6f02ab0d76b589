package kafka

import (
	"Bastion/internal/model"
	"Bastion/internal/pkg/es"
	"Bastion/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// IndexHandler keeps the search indices in sync with activity events
type IndexHandler struct {
	postDBRepo repository.PostRepo
	userDBRepo repository.UserRepo
	postESRepo es.PostRepo
	userESRepo es.UserRepo
}

func NewIndexHandler(postDBRepo repository.PostRepo, userDBRepo repository.UserRepo, postESRepo es.PostRepo, userESRepo es.UserRepo) *IndexHandler {
	return &IndexHandler{
		postDBRepo: postDBRepo,
		userDBRepo: userDBRepo,
		postESRepo: postESRepo,
		userESRepo: userESRepo,
	}
}

func (s *IndexHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("index consumer setup")
	return nil
}

func (s *IndexHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("index consumer cleanup")
	return nil
}

func (s *IndexHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *IndexHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ev, err := decodeEvent(msg)
	if err != nil {
		// a malformed message can never succeed; skip it instead of retrying forever
		log.ErrorContext(ctx, "drop undecodable activity event", "offset", msg.Offset, "err", err)
		return nil
	}

	switch ev.Type {
	case EventPostCreated, EventPostUpdated:
		return s.syncPost(ctx, ev.EntityID)
	case EventPostDeleted:
		return errors.Wrapf(s.postESRepo.DeletePost(ctx, ev.EntityID), "delete post %d", ev.EntityID)
	case EventUserCreated, EventUserUpdated:
		return s.syncUser(ctx, ev.EntityID)
	default:
		return nil
	}
}

// syncPost indexes approved posts and removes everything else
func (s *IndexHandler) syncPost(ctx context.Context, id uint64) error {
	post, err := s.postDBRepo.GetPostByID(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "load post %d", id)
	}
	if post == nil || post.Status != model.StatusApproved {
		return errors.Wrapf(s.postESRepo.DeletePost(ctx, id), "delete post %d", id)
	}
	return errors.Wrapf(s.postESRepo.IndexPost(ctx, post), "index post %d", id)
}

func (s *IndexHandler) syncUser(ctx context.Context, id uint64) error {
	user, err := s.userDBRepo.GetUserById(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "load user %d", id)
	}
	if user == nil {
		return errors.Wrapf(s.userESRepo.DeleteUser(ctx, id), "delete user %d", id)
	}
	return errors.Wrapf(s.userESRepo.IndexUser(ctx, user), "index user %d", id)
}
