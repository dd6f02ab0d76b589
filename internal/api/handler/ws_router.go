package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/pkg/util"
	"Bastion/internal/service"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// errorMessage types
const (
	wsErrViolation    = "content_violation"
	wsErrScreening    = "screening_error"
	wsErrValidation   = "validation"
	wsErrUnauthorized = "unauthorized"
	wsErrNotFound     = "not_found"
	wsErrDatabase     = "database_error"
)

const wsScreeningMessage = "Content could not be verified. Please try again."

type wsAction func(ctx context.Context, s *realtime.Session, data json.RawMessage) error

type wsRoute struct {
	auth   bool
	action wsAction
}

// WsRouter maps inbound socket events to the same services the HTTP handlers use
type WsRouter struct {
	hub             *realtime.Hub
	postSvc         service.PostService
	commentSvc      service.CommentService
	actionSvc       service.PostActionService
	userFollowSvc   service.UserFollowService
	messageSvc      service.MessageService
	userSvc         service.UserService
	notificationSvc service.NotificationService

	routes map[string]wsRoute
}

func NewWsRouter(
	hub *realtime.Hub,
	postSvc service.PostService,
	commentSvc service.CommentService,
	actionSvc service.PostActionService,
	userFollowSvc service.UserFollowService,
	messageSvc service.MessageService,
	userSvc service.UserService,
	notificationSvc service.NotificationService,
) *WsRouter {
	r := &WsRouter{
		hub:             hub,
		postSvc:         postSvc,
		commentSvc:      commentSvc,
		actionSvc:       actionSvc,
		userFollowSvc:   userFollowSvc,
		messageSvc:      messageSvc,
		userSvc:         userSvc,
		notificationSvc: notificationSvc,
	}
	r.routes = map[string]wsRoute{
		realtime.EventNewPost:              {auth: true, action: r.newPost},
		realtime.EventSendComment:          {auth: true, action: r.sendComment},
		realtime.EventLikePost:             {auth: true, action: r.likePost},
		realtime.EventFollowUpdate:         {auth: true, action: r.followUpdate},
		realtime.EventSendMessage:          {auth: true, action: r.sendMessage},
		realtime.EventMarkAsRead:           {auth: true, action: r.markAsRead},
		realtime.EventTyping:               {auth: true, action: r.typing(true)},
		realtime.EventStopTyping:           {auth: true, action: r.typing(false)},
		realtime.EventUpdateProfile:        {auth: true, action: r.updateProfile},
		realtime.EventDeletePost:           {auth: true, action: r.deletePost},
		realtime.EventDeleteComment:        {auth: true, action: r.deleteComment},
		realtime.EventMarkNotificationRead: {auth: true, action: r.markNotificationRead},
		realtime.EventSubscribe:            {action: r.subscribe},
		realtime.EventUnsubscribe:          {action: r.unsubscribe},
	}
	return r
}

// Dispatch runs one inbound event to completion; failures go back to the sender as errorMessage
func (r *WsRouter) Dispatch(ctx context.Context, s *realtime.Session, env realtime.Envelope) {
	route, ok := r.routes[env.Event]
	if !ok {
		r.hub.Reply(ctx, s, realtime.EventErrorMessage, wsErrorPayload("Unknown event: "+env.Event, wsErrValidation))
		return
	}
	if route.auth && !s.Authenticated() {
		r.hub.Reply(ctx, s, realtime.EventErrorMessage, wsErrorPayload(service.ErrAuthRequired.Error(), wsErrUnauthorized))
		return
	}
	if err := route.action(ctx, s, env.Data); err != nil {
		r.hub.Reply(ctx, s, realtime.EventErrorMessage, wsErrorFor(ctx, env.Event, err))
	}
}

func decodeData[T any](data json.RawMessage) (*T, error) {
	v := new(T)
	if len(data) == 0 {
		return nil, service.ErrParamInvalid
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, service.ErrParamInvalid
	}
	return v, nil
}

// decodeRef also accepts a bare numeric id such as `42`
func decodeRef[T any](data json.RawMessage, fromID func(id uint64) *T) (*T, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return decodeData[T](data)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, service.ErrParamInvalid
	}
	return fromID(id), nil
}

func postRef(id uint64) *dto.WsPostReq { return &dto.WsPostReq{PostID: id} }

func (r *WsRouter) newPost(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsNewPostReq](data)
	if err != nil {
		return err
	}
	post, err := r.postSvc.CreatePost(ctx, s.UserID, &dto.CreatePostDTO{
		Title:       req.Title,
		Content:     req.Content,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
		CommunityID: req.CommunityID,
	})
	if err != nil {
		return err
	}
	r.hub.Reply(ctx, s, realtime.EventPostSuccess, post)
	return nil
}

func (r *WsRouter) sendComment(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsCommentReq](data)
	if err != nil {
		return err
	}
	comment, err := r.commentSvc.AddComment(ctx, s.UserID, req.PostID, req.Content)
	if err != nil {
		return err
	}
	r.hub.Reply(ctx, s, realtime.EventCommentSuccess, comment)
	return nil
}

func (r *WsRouter) likePost(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeRef(data, postRef)
	if err != nil {
		return err
	}
	_, err = r.actionSvc.ToggleLike(ctx, s.UserID, req.PostID)
	return err
}

func (r *WsRouter) followUpdate(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsFollowReq](data)
	if err != nil {
		return err
	}
	res, err := r.userFollowSvc.Follow(ctx, s.UserID, req.TargetUserID, req.Action)
	if err != nil {
		return err
	}
	r.hub.Reply(ctx, s, realtime.EventFollowUpdateSuccess, res)
	return nil
}

func (r *WsRouter) sendMessage(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsMessageReq](data)
	if err != nil {
		return err
	}
	msg, err := r.messageSvc.Send(ctx, s.UserID, req.ReceiverID, req.Message)
	if err != nil {
		return err
	}
	r.hub.Reply(ctx, s, realtime.EventMessageSent, msg)
	return nil
}

func (r *WsRouter) markAsRead(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	// a bare id names a single message
	req, err := decodeRef(data, func(id uint64) *dto.WsMarkReadReq {
		return &dto.WsMarkReadReq{MessageID: id}
	})
	if err != nil {
		return err
	}
	if req.MessageID != 0 {
		return r.messageSvc.MarkRead(ctx, s.UserID, req.MessageID)
	}
	_, err = r.messageSvc.MarkReadFrom(ctx, s.UserID, req.SenderID)
	return err
}

func (r *WsRouter) typing(on bool) wsAction {
	return func(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
		req, err := decodeData[dto.WsTypingReq](data)
		if err != nil {
			return err
		}
		return r.messageSvc.Typing(ctx, s.UserID, req.ReceiverID, on)
	}
}

func (r *WsRouter) updateProfile(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.UpdateProfileDTO](data)
	if err != nil {
		return err
	}
	if err := util.ValidateDTO(req); err != nil {
		return err
	}
	changed, err := r.userSvc.UpdateProfile(ctx, s.UserID, req)
	if err != nil {
		return err
	}
	r.hub.Reply(ctx, s, realtime.EventProfileUpdateSuccess, changed)
	return nil
}

func (r *WsRouter) deletePost(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeRef(data, postRef)
	if err != nil {
		return err
	}
	return r.postSvc.DeletePost(ctx, s.UserID, req.PostID)
}

func (r *WsRouter) deleteComment(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsCommentRef](data)
	if err != nil {
		return err
	}
	_, err = r.commentSvc.DeleteComment(ctx, s.UserID, req.CommentID)
	return err
}

func (r *WsRouter) markNotificationRead(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsNotificationReq](data)
	if err != nil {
		return err
	}
	if err := r.notificationSvc.MarkRead(ctx, s.UserID, req.NotificationID); err != nil {
		return err
	}
	r.hub.Reply(ctx, s, realtime.EventNotificationMarkedRead, &dto.NotificationReadDTO{
		NotificationID: req.NotificationID,
		Success:        true,
	})
	return nil
}

func (r *WsRouter) subscribe(ctx context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsTopicReq](data)
	if err != nil {
		return err
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return service.ErrParamInvalid
	}
	r.hub.Subscribe(s, topic)
	r.hub.Reply(ctx, s, realtime.EventSubscribed, &dto.WsTopicReq{Topic: topic})
	return nil
}

func (r *WsRouter) unsubscribe(_ context.Context, s *realtime.Session, data json.RawMessage) error {
	req, err := decodeData[dto.WsTopicReq](data)
	if err != nil {
		return err
	}
	r.hub.Unsubscribe(s, strings.TrimSpace(req.Topic))
	return nil
}

func wsErrorPayload(message, kind string) *dto.ErrorMessageDTO {
	return &dto.ErrorMessageDTO{Message: message, Type: kind}
}

// wsErrorFor classifies err the same way the HTTP surface picks a status
func wsErrorFor(ctx context.Context, event string, err error) *dto.ErrorMessageDTO {
	if v, ok := screening.AsViolation(err); ok {
		return wsErrorPayload(v.Error(), wsErrViolation)
	}
	if errors.Is(err, screening.ErrUnavailable) {
		log.ErrorContext(ctx, "screening unavailable", "event", event, "err", err)
		return wsErrorPayload(wsScreeningMessage, wsErrScreening)
	}
	code, ok := service.ErrorMap[err]
	if !ok {
		if util.IsValidationError(err) {
			return wsErrorPayload(err.Error(), wsErrValidation)
		}
		log.ErrorContext(ctx, "ws event failed", "event", event, "err", err)
		return wsErrorPayload("Failed to process "+event, wsErrDatabase)
	}
	switch code {
	case service.Unauthorized, service.Forbidden:
		return wsErrorPayload(err.Error(), wsErrUnauthorized)
	case service.NotFound:
		return wsErrorPayload(err.Error(), wsErrNotFound)
	case service.BadRequest:
		return wsErrorPayload(err.Error(), wsErrValidation)
	default:
		log.ErrorContext(ctx, "ws event failed", "event", event, "err", err)
		return wsErrorPayload(err.Error(), wsErrDatabase)
	}
}
