package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/response"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	agentSvc service.AgentService
}

func NewAgentHandler(agentSvc service.AgentService) *AgentHandler {
	return &AgentHandler{agentSvc: agentSvc}
}

func (s *AgentHandler) Chat(c *gin.Context) {
	var req dto.AIChatDTO
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := s.agentSvc.Chat(c.Request.Context(), currentUser(c), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AgentHandler) History(c *gin.Context) {
	list, err := s.agentSvc.History(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
