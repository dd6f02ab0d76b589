package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/repository"
	"context"
	"strings"
)

type MessageService interface {
	// Send stores the message and pushes it to the receiver if they are online.
	// The returned copy is the sender's view.
	Send(ctx context.Context, senderID, receiverID uint64, text string) (*dto.MessageDTO, error)
	MarkRead(ctx context.Context, readerID, messageID uint64) error
	MarkReadFrom(ctx context.Context, readerID, senderID uint64) (*dto.MarkReadResultDTO, error)
	Typing(ctx context.Context, senderID, receiverID uint64, typing bool) error
	Conversations(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error)
	Thread(ctx context.Context, userID, peerID uint64) ([]*dto.MessageDTO, error)
}

type MessageServiceImpl struct {
	messageRepo repository.MessageRepo
	userRepo    repository.UserRepo
	broker      realtime.Broker
}

func NewMessageService(messageRepo repository.MessageRepo, userRepo repository.UserRepo, broker realtime.Broker) MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		broker:      broker,
	}
}

func (s *MessageServiceImpl) Send(ctx context.Context, senderID, receiverID uint64, text string) (*dto.MessageDTO, error) {
	if senderID == 0 {
		return nil, ErrAuthRequired
	}
	text = strings.TrimSpace(text)
	if receiverID == 0 || text == "" {
		return nil, ErrMessageInvalid
	}
	if receiverID == senderID {
		return nil, ErrMessageSelf
	}
	receiver, err := s.userRepo.GetUserById(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrUserNotFound
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}
	if err = s.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	runSideEffects(ctx, "send_message", func(ctx context.Context) error {
		s.broker.PublishToUser(ctx, receiverID, realtime.EventReceiveMessage, toMessageDTO(msg, receiverID))
		return nil
	})
	return toMessageDTO(msg, senderID), nil
}

func (s *MessageServiceImpl) MarkRead(ctx context.Context, readerID, messageID uint64) error {
	if readerID == 0 {
		return ErrAuthRequired
	}
	msg, err := s.messageRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil || msg.ReceiverID != readerID {
		return ErrMessageNotFound
	}
	if msg.IsRead {
		return nil
	}
	if err = s.messageRepo.MarkRead(ctx, messageID); err != nil {
		return err
	}

	runSideEffects(ctx, "mark_read", func(ctx context.Context) error {
		s.broker.PublishToUser(ctx, msg.SenderID, realtime.EventMessageRead, &dto.MessageReadDTO{MessageID: messageID})
		return nil
	})
	return nil
}

// MarkReadFrom marks everything senderID sent to readerID as read
func (s *MessageServiceImpl) MarkReadFrom(ctx context.Context, readerID, senderID uint64) (*dto.MarkReadResultDTO, error) {
	if readerID == 0 {
		return nil, ErrAuthRequired
	}
	if senderID == 0 {
		return nil, ErrParamInvalid
	}
	count, err := s.messageRepo.MarkReadFrom(ctx, readerID, senderID)
	if err != nil {
		return nil, err
	}

	result := &dto.MarkReadResultDTO{ReaderID: readerID, Count: count}
	if count > 0 {
		runSideEffects(ctx, "mark_read_from", func(ctx context.Context) error {
			s.broker.PublishToUser(ctx, senderID, realtime.EventMessageRead, result)
			return nil
		})
	}
	return result, nil
}

func (s *MessageServiceImpl) Typing(ctx context.Context, senderID, receiverID uint64, typing bool) error {
	if senderID == 0 {
		return ErrAuthRequired
	}
	if receiverID == 0 {
		return ErrParamInvalid
	}
	event := realtime.EventHideTyping
	if typing {
		event = realtime.EventDisplayTyping
	}
	s.broker.PublishToUser(ctx, receiverID, event, &dto.TypingDTO{SenderID: senderID})
	return nil
}

func (s *MessageServiceImpl) Conversations(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error) {
	latest, err := s.messageRepo.GetLatestPerPeer(ctx, userID, consts.MaxPageSize)
	if err != nil {
		return nil, err
	}
	peerIDs := make([]uint64, 0, len(latest))
	for _, m := range latest {
		peerIDs = append(peerIDs, peerOf(m, userID))
	}
	users, err := s.userRepo.GetUserByIds(ctx, peerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	res := make([]*dto.ConversationDTO, 0, len(latest))
	for _, m := range latest {
		peer, ok := byID[peerOf(m, userID)]
		if !ok {
			continue
		}
		res = append(res, &dto.ConversationDTO{
			Partner:     authorOf(peer),
			LastMessage: toMessageDTO(m, userID),
		})
	}
	return res, nil
}

func (s *MessageServiceImpl) Thread(ctx context.Context, userID, peerID uint64) ([]*dto.MessageDTO, error) {
	if peerID == 0 {
		return nil, ErrTargetUserRequired
	}
	msgs, err := s.messageRepo.GetThread(ctx, userID, peerID, consts.ThreadPageSize)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, toMessageDTO(m, userID))
	}
	return res, nil
}

func peerOf(m *model.Message, userID uint64) uint64 {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
