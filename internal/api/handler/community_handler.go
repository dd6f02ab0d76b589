package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/response"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	communitySvc service.CommunityService
}

func NewCommunityHandler(communitySvc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communitySvc: communitySvc}
}

func (s *CommunityHandler) List(c *gin.Context) {
	list, err := s.communitySvc.ListCommunities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *CommunityHandler) Get(c *gin.Context) {
	community, err := s.communitySvc.GetCommunity(c.Request.Context(), currentUser(c), c.Param("community"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, community)
}

func (s *CommunityHandler) Members(c *gin.Context) {
	members, err := s.communitySvc.ListMembers(c.Request.Context(), c.Param("community"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

func (s *CommunityHandler) Create(c *gin.Context) {
	var req dto.CreateCommunityDTO
	if !bindJSON(c, &req, false) {
		return
	}
	community, err := s.communitySvc.CreateCommunity(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, community)
}

func (s *CommunityHandler) Update(c *gin.Context) {
	var req dto.UpdateCommunityDTO
	if !bindJSON(c, &req, false) {
		return
	}
	community, err := s.communitySvc.UpdateCommunity(c.Request.Context(), currentUser(c), c.Param("community"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, community)
}

func (s *CommunityHandler) Delete(c *gin.Context) {
	if err := s.communitySvc.DeleteCommunity(c.Request.Context(), currentUser(c), c.Param("community")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommunityHandler) Join(c *gin.Context) {
	if err := s.communitySvc.Join(c.Request.Context(), currentUser(c), c.Param("community")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Joined community"})
}

func (s *CommunityHandler) Leave(c *gin.Context) {
	if err := s.communitySvc.Leave(c.Request.Context(), currentUser(c), c.Param("community")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Left community"})
}

func (s *CommunityHandler) UpdateMemberRole(c *gin.Context) {
	memberID, ok := pathID(c, "member_id")
	if !ok {
		return
	}
	var req dto.UpdateMemberRoleDTO
	if !bindJSON(c, &req, false) {
		return
	}
	err := s.communitySvc.UpdateMemberRole(c.Request.Context(), currentUser(c), c.Param("community"), memberID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"memberId": memberID, "role": req.Role})
}
