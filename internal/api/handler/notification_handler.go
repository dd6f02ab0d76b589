package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/response"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (s *NotificationHandler) List(c *gin.Context) {
	list, err := s.notificationSvc.List(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) ListUniversal(c *gin.Context) {
	list, err := s.notificationSvc.ListUniversal(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := s.notificationSvc.UnreadCount(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.UnreadCountDTO{Count: count})
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "notification_id")
	if !ok {
		return
	}
	if err := s.notificationSvc.MarkRead(c.Request.Context(), currentUser(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.NotificationReadDTO{NotificationID: id, Success: true})
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := s.notificationSvc.MarkAllRead(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"updated": n})
}

func (s *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "notification_id")
	if !ok {
		return
	}
	if err := s.notificationSvc.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// CreateUniversal admin only, enforced by the route
func (s *NotificationHandler) CreateUniversal(c *gin.Context) {
	var req dto.UniversalNotificationDTO
	if !bindJSON(c, &req, false) {
		return
	}
	n, err := s.notificationSvc.CreateUniversal(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, n)
}
