package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/response"
	"Bastion/internal/pkg/util"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc    service.PostService
	commentSvc service.CommentService
	actionSvc  service.PostActionService
}

func NewPostHandler(postSvc service.PostService, commentSvc service.CommentService, actionSvc service.PostActionService) *PostHandler {
	return &PostHandler{
		postSvc:    postSvc,
		commentSvc: commentSvc,
		actionSvc:  actionSvc,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostDTO
	if !bindJSON(c, &req, false) {
		return
	}
	post, err := s.postSvc.CreatePost(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// GetFeed ?cursor=<last id>&limit=
func (s *PostHandler) GetFeed(c *gin.Context) {
	cursor := util.ParseID(c.Query("cursor"))
	limit := util.ClampLimit(queryInt(c, "limit", 0), consts.FeedPageSize, consts.MaxPageSize)
	feed, err := s.postSvc.GetFeed(c.Request.Context(), currentUser(c), cursor, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	post, err := s.postSvc.GetPost(c.Request.Context(), currentUser(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	var req dto.UpdatePostDTO
	if !bindJSON(c, &req, false) {
		return
	}
	post, err := s.postSvc.UpdatePost(c.Request.Context(), currentUser(c), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	if err := s.postSvc.DeletePost(c.Request.Context(), currentUser(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"postId": postID})
}

func (s *PostHandler) LikePost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	res, err := s.actionSvc.ToggleLike(c.Request.Context(), currentUser(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostHandler) GetComments(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	comments, err := s.commentSvc.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *PostHandler) CreateComment(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	var req dto.CreateCommentDTO
	if !bindJSON(c, &req, false) {
		return
	}
	comment, err := s.commentSvc.AddComment(c.Request.Context(), currentUser(c), postID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *PostHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	res, err := s.commentSvc.DeleteComment(c.Request.Context(), currentUser(c), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Moderation queue

func (s *PostHandler) GetPendingPosts(c *gin.Context) {
	posts, err := s.postSvc.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPendingComments(c *gin.Context) {
	comments, err := s.commentSvc.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *PostHandler) ApprovePost(c *gin.Context)    { s.moderatePost(c, model.StatusApproved) }
func (s *PostHandler) RejectPost(c *gin.Context)     { s.moderatePost(c, model.StatusRejected) }
func (s *PostHandler) ApproveComment(c *gin.Context) { s.moderateComment(c, model.StatusApproved) }
func (s *PostHandler) RejectComment(c *gin.Context)  { s.moderateComment(c, model.StatusRejected) }

func (s *PostHandler) moderatePost(c *gin.Context, status string) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	if err := s.postSvc.ModeratePost(c.Request.Context(), postID, status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"postId": postID, "status": status})
}

func (s *PostHandler) moderateComment(c *gin.Context, status string) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	if err := s.commentSvc.ModerateComment(c.Request.Context(), commentID, status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"commentId": commentID, "status": status})
}
