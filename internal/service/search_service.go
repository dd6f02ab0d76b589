package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/es"
	"Bastion/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

type SearchService interface {
	SearchUsers(ctx context.Context, viewerID uint64, keyword string, limit int) ([]*dto.UserDTO, error)
	SearchPosts(ctx context.Context, keyword string, limit int) ([]*dto.PostDTO, error)
}

type SearchServiceImpl struct {
	userRepo       repository.UserRepo
	postRepo       repository.PostRepo
	userFollowRepo repository.UserFollowRepo
	userESRepo     es.UserRepo
	postESRepo     es.PostRepo
}

// NewSearchService the es repos may be nil, in which case the database is queried directly
func NewSearchService(
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	userFollowRepo repository.UserFollowRepo,
	userESRepo es.UserRepo,
	postESRepo es.PostRepo,
) SearchService {
	return &SearchServiceImpl{
		userRepo:       userRepo,
		postRepo:       postRepo,
		userFollowRepo: userFollowRepo,
		userESRepo:     userESRepo,
		postESRepo:     postESRepo,
	}
}

func (s *SearchServiceImpl) SearchUsers(ctx context.Context, viewerID uint64, keyword string, limit int) ([]*dto.UserDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*dto.UserDTO{}, nil
	}

	users, err := s.findUsers(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserDTO, 0, len(users))
	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		items = append(items, toUserDTO(u))
		ids = append(ids, u.ID)
	}
	if viewerID != 0 && len(ids) > 0 {
		following, err := s.userFollowRepo.FilterFollowing(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
		set := make(map[uint64]struct{}, len(following))
		for _, id := range following {
			set[id] = struct{}{}
		}
		for _, it := range items {
			_, ok := set[it.ID]
			it.IsFollowing = &ok
		}
	}
	return items, nil
}

func (s *SearchServiceImpl) SearchPosts(ctx context.Context, keyword string, limit int) ([]*dto.PostDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*dto.PostDTO{}, nil
	}

	posts, err := s.findPosts(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		if p.Status != model.StatusApproved {
			continue
		}
		items = append(items, toPostDTO(p))
	}
	return items, nil
}

func (s *SearchServiceImpl) findUsers(ctx context.Context, keyword string, limit int) ([]*model.User, error) {
	if s.userESRepo != nil {
		ids, err := s.userESRepo.SearchUsers(ctx, keyword, limit)
		if err == nil {
			users, err := s.userRepo.GetUserByIds(ctx, ids)
			if err != nil {
				return nil, err
			}
			return orderUsers(users, ids), nil
		}
		log.WarnContext(ctx, "user search index failed, falling back to database", "err", err)
	}
	return s.userRepo.SearchUsers(ctx, keyword, limit)
}

func (s *SearchServiceImpl) findPosts(ctx context.Context, keyword string, limit int) ([]*model.Post, error) {
	if s.postESRepo != nil {
		ids, err := s.postESRepo.SearchPosts(ctx, keyword, limit)
		if err == nil {
			posts, err := s.postRepo.GetPostsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return orderPosts(posts, ids), nil
		}
		log.WarnContext(ctx, "post search index failed, falling back to database", "err", err)
	}
	return s.postRepo.SearchPosts(ctx, keyword, limit)
}

// orderUsers restores relevance order; ids missing from the database are dropped
func orderUsers(users []*model.User, ids []uint64) []*model.User {
	byID := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	res := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			res = append(res, u)
		}
	}
	return res
}

func orderPosts(posts []*model.Post, ids []uint64) []*model.Post {
	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	res := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			res = append(res, p)
		}
	}
	return res
}
