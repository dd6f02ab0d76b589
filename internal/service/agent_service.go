package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/llm"
	"Bastion/internal/pkg/mongo"
	"Bastion/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

const defaultSystemPrompt = "You are Bastion's helpful assistant. Answer briefly and kindly. Never produce hateful or harassing content."

// ChatModel answers a question given prior turns
type ChatModel interface {
	Chat(ctx context.Context, systemPrompt, displayName string, history []llm.Turn, question string) (string, error)
}

type AgentService interface {
	Chat(ctx context.Context, userID uint64, message string) (*dto.AIChatResultDTO, error)
	History(ctx context.Context, userID uint64) ([]*dto.AIMessageDTO, error)
}

type AgentServiceImpl struct {
	model        ChatModel
	history      mongo.AIMessageRepo
	userRepo     repository.UserRepo
	systemPrompt string
	historyTurns int
}

// NewAgentService model and history may be nil; without a model every chat is refused
func NewAgentService(model ChatModel, history mongo.AIMessageRepo, userRepo repository.UserRepo, systemPrompt string, historyTurns int) AgentService {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	if historyTurns <= 0 {
		historyTurns = 10
	}
	return &AgentServiceImpl{
		model:        model,
		history:      history,
		userRepo:     userRepo,
		systemPrompt: systemPrompt,
		historyTurns: historyTurns,
	}
}

func (s *AgentServiceImpl) Chat(ctx context.Context, userID uint64, message string) (*dto.AIChatResultDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if s.model == nil {
		return nil, ErrAssistantUnavailable
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrParamInvalid
	}

	var turns []llm.Turn
	if s.history != nil {
		past, err := s.history.GetHistory(ctx, userID, s.historyTurns*2)
		if err != nil {
			log.WarnContext(ctx, "load ai history failed", "user_id", userID, "err", err)
		}
		for _, m := range past {
			turns = append(turns, llm.Turn{Role: m.Role, Content: m.Content})
		}
	}

	answer, err := s.model.Chat(ctx, s.systemPrompt, actorName(ctx, s.userRepo, userID), turns, message)
	if err != nil {
		log.ErrorContext(ctx, "ai chat failed", "user_id", userID, "err", err)
		return nil, ErrAssistantUnavailable
	}

	if s.history != nil {
		err = s.history.SaveMessages(ctx,
			&mongo.AIMessage{UserID: userID, Role: llm.RoleUser, Content: message},
			&mongo.AIMessage{UserID: userID, Role: llm.RoleAssistant, Content: answer},
		)
		if err != nil {
			log.WarnContext(ctx, "save ai history failed", "user_id", userID, "err", err)
		}
	}
	return &dto.AIChatResultDTO{Response: answer}, nil
}

func (s *AgentServiceImpl) History(ctx context.Context, userID uint64) ([]*dto.AIMessageDTO, error) {
	res := make([]*dto.AIMessageDTO, 0)
	if s.history == nil {
		return res, nil
	}
	msgs, err := s.history.GetHistory(ctx, userID, s.historyTurns*2)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		res = append(res, &dto.AIMessageDTO{Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return res, nil
}
