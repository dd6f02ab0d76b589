package handler

import (
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/response"
	"Bastion/internal/pkg/util"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchSvc service.SearchService
}

func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{searchSvc: searchSvc}
}

func (s *SearchHandler) Users(c *gin.Context) {
	limit := util.ClampLimit(queryInt(c, "limit", 0), consts.SearchResultCap, consts.SearchResultCap)
	users, err := s.searchSvc.SearchUsers(c.Request.Context(), currentUser(c), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *SearchHandler) Posts(c *gin.Context) {
	limit := util.ClampLimit(queryInt(c, "limit", 0), consts.SearchResultCap, consts.SearchResultCap)
	posts, err := s.searchSvc.SearchPosts(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
