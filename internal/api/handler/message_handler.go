package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/response"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

func (s *MessageHandler) GetConversations(c *gin.Context) {
	list, err := s.messageSvc.Conversations(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *MessageHandler) GetThread(c *gin.Context) {
	peerID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	msgs, err := s.messageSvc.Thread(c.Request.Context(), currentUser(c), peerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}

func (s *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageDTO
	if !bindJSON(c, &req, false) {
		return
	}
	msg, err := s.messageSvc.Send(c.Request.Context(), currentUser(c), req.ReceiverID, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

func (s *MessageHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadDTO
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := s.messageSvc.MarkReadFrom(c.Request.Context(), currentUser(c), req.SenderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
