package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/response"
	"Bastion/internal/pkg/util"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{userFollowSvc: userFollowSvc}
}

// Follow toggles, or forces the direction given in the optional body
func (s *UserFollowHandler) Follow(c *gin.Context) {
	targetID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	var req dto.FollowActionDTO
	if !bindJSON(c, &req, true) {
		return
	}
	res, err := s.userFollowSvc.Follow(c.Request.Context(), currentUser(c), targetID, req.Action)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserFollowHandler) GetFollowers(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	limit, offset := s.getPagination(c)
	users, err := s.userFollowSvc.GetFollowers(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserFollowHandler) GetFollowing(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	limit, offset := s.getPagination(c)
	users, err := s.userFollowSvc.GetFollowing(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// getPagination ?page=1&page_size=20 to limit and offset
func (s *UserFollowHandler) getPagination(c *gin.Context) (int, int) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	size := util.ClampLimit(queryInt(c, "page_size", 0), consts.FeedPageSize, consts.MaxPageSize)
	return size, (page - 1) * size
}
