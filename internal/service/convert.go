package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/repository"
	"context"
	"fmt"

	"github.com/jinzhu/copier"
)

func authorOf(u *model.User) *model.Author {
	if u == nil {
		return nil
	}
	return &model.Author{
		ID:        u.ID,
		Username:  u.Username,
		Fullname:  u.Fullname,
		AvatarURL: u.AvatarURL,
	}
}

func toPostDTO(p *model.Post) *dto.PostDTO {
	item := &dto.PostDTO{}
	_ = copier.Copy(item, p)
	item.Author = authorOf(p.User)
	return item
}

func toCommentDTO(c *model.PostComment) *dto.CommentDTO {
	item := &dto.CommentDTO{}
	_ = copier.Copy(item, c)
	item.Author = authorOf(c.User)
	return item
}

func toMessageDTO(m *model.Message, viewerID uint64) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:           m.ID,
		SenderID:     m.SenderID,
		ReceiverID:   m.ReceiverID,
		Message:      m.Message,
		IsRead:       m.IsRead,
		Timestamp:    m.CreatedAt,
		IsOwnMessage: m.SenderID == viewerID,
	}
}

func toUserDTO(u *model.User) *dto.UserDTO {
	item := &dto.UserDTO{}
	_ = copier.Copy(item, u)
	return item
}

// actorName is how an actor is named in notification text
func actorName(ctx context.Context, userRepo repository.UserRepo, userID uint64) string {
	u, err := userRepo.GetUserById(ctx, userID)
	if err != nil || u == nil {
		return "Someone"
	}
	if u.Fullname != "" {
		return u.Fullname
	}
	return u.Username
}

func postLink(postID uint64) string {
	return fmt.Sprintf("/feed#post-%d", postID)
}
