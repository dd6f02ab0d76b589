package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/redis"
	"Bastion/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

// NotificationInput addressed notification; zero-valued optional fields are omitted
type NotificationInput struct {
	RecipientID uint64
	SenderID    uint64
	Title       string
	Message     string
	Kind        string
	SourceID    uint64
	SourceKind  string
	Link        string
}

type NotificationService interface {
	// Notify persists and pushes an addressed notification. It never fails: a nil
	// return means the write failed and was logged.
	Notify(ctx context.Context, in *NotificationInput) *model.Notification
	CreateUniversal(ctx context.Context, senderID uint64, req *dto.UniversalNotificationDTO) (*model.Notification, error)
	List(ctx context.Context, userID uint64) ([]*model.Notification, error)
	ListUniversal(ctx context.Context) ([]*model.Notification, error)
	UnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, userID, notificationID uint64) error
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

type NotificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	broker           realtime.Broker
}

func NewNotificationService(notificationRepo repository.NotificationRepo, broker realtime.Broker) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		broker:           broker,
	}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, in *NotificationInput) *model.Notification {
	if in == nil || in.RecipientID == 0 {
		return nil
	}
	n := &model.Notification{
		RecipientID: &in.RecipientID,
		Title:       in.Title,
		Message:     in.Message,
		Kind:        in.Kind,
	}
	if n.Kind == "" {
		n.Kind = model.KindSystem
	}
	if in.SenderID != 0 {
		n.SenderID = &in.SenderID
	}
	if in.SourceID != 0 {
		n.SourceID = &in.SourceID
	}
	if in.SourceKind != "" {
		n.SourceKind = &in.SourceKind
	}
	if in.Link != "" {
		n.Link = &in.Link
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.ErrorContext(ctx, "create notification failed", "recipient", in.RecipientID, "kind", n.Kind, "err", err)
		return nil
	}
	s.invalidateUnread(ctx, in.RecipientID)
	s.broker.PublishToUser(ctx, in.RecipientID, realtime.EventNewNotification, toNotificationEvent(n))
	return n
}

func (s *NotificationServiceImpl) CreateUniversal(ctx context.Context, senderID uint64, req *dto.UniversalNotificationDTO) (*model.Notification, error) {
	if req.Title == "" || req.Message == "" {
		return nil, ErrParamInvalid
	}
	n := &model.Notification{
		Title:       req.Title,
		Message:     req.Message,
		Kind:        model.KindSystem,
		IsUniversal: true,
	}
	if senderID != 0 {
		n.SenderID = &senderID
	}
	if req.Link != "" {
		n.Link = &req.Link
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	s.broker.Broadcast(ctx, realtime.EventNewNotification, toNotificationEvent(n))
	return n, nil
}

func (s *NotificationServiceImpl) List(ctx context.Context, userID uint64) ([]*model.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, userID, consts.NotificationListCap)
}

func (s *NotificationServiceImpl) ListUniversal(ctx context.Context) ([]*model.Notification, error) {
	return s.notificationRepo.ListUniversal(ctx, consts.NotificationListCap)
}

// UnreadCount is served from redis when cached; writes invalidate the entry
func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	key := unreadKey(userID)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return n, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err = redis.SetWithExpiration(ctx, key, count, consts.NotificationUnreadTTL); err != nil {
		log.WarnContext(ctx, "cache unread count failed", "user_id", userID, "err", err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	rows, err := s.notificationRepo.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		// already read is fine, someone else's or missing is not
		n, err := s.notificationRepo.GetByID(ctx, notificationID)
		if err != nil {
			return err
		}
		if n == nil || n.RecipientID == nil || *n.RecipientID != userID {
			return ErrNotificationNotFound
		}
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	rows, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateUnread(ctx, userID)
	return rows, nil
}

func (s *NotificationServiceImpl) Delete(ctx context.Context, userID, notificationID uint64) error {
	rows, err := s.notificationRepo.Delete(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationServiceImpl) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.notificationRepo.PurgeReadBefore(ctx, time.Now().Add(-olderThan))
}

func (s *NotificationServiceImpl) invalidateUnread(ctx context.Context, userID uint64) {
	if err := redis.DeleteKey(ctx, unreadKey(userID)); err != nil {
		log.WarnContext(ctx, "invalidate unread count failed", "user_id", userID, "err", err)
	}
}

func unreadKey(userID uint64) string {
	return consts.NotificationUnreadKey + strconv.FormatUint(userID, 10)
}

func toNotificationEvent(n *model.Notification) *dto.NotificationEventDTO {
	ev := &dto.NotificationEventDTO{
		ID:      n.ID,
		Title:   n.Title,
		Message: n.Message,
		Type:    n.Kind,
	}
	if n.Link != nil {
		ev.Link = *n.Link
	}
	return ev
}
