package handler

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/response"
	"Bastion/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if !bindJSON(c, &req, false) {
		return
	}
	user, err := s.userSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := s.userSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	user, err := s.userSvc.GetProfile(c.Request.Context(), currentUser(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) GetMe(c *gin.Context) {
	user, err := s.userSvc.GetProfile(c.Request.Context(), 0, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileDTO
	if !bindJSON(c, &req, false) {
		return
	}
	changed, err := s.userSvc.UpdateProfile(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, changed)
}

func (s *UserHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if fileHeader.Size > consts.MaxUploadBytes {
		response.Fail(c, response.BadRequest, "File too large")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	url, err := s.userSvc.UploadAvatar(c.Request.Context(), currentUser(c), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.AvatarResultDTO{AvatarURL: url})
}
