package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/kafka"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/repository"
	"context"
	"strings"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
	GetFeed(ctx context.Context, viewerID, cursor uint64, limit int) (*dto.FeedDTO, error)
	UpdatePost(ctx context.Context, userID, postID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
	ListPending(ctx context.Context) ([]*dto.PostDTO, error)
	ModeratePost(ctx context.Context, postID uint64, status string) error
}

type PostServiceImpl struct {
	postRepo       repository.PostRepo
	postActionRepo repository.PostActionRepo
	communityRepo  repository.CommunityRepo
	screener       screening.Screener
	broker         realtime.Broker
	producer       kafka.Producer
}

func NewPostService(
	postRepo repository.PostRepo,
	postActionRepo repository.PostActionRepo,
	communityRepo repository.CommunityRepo,
	screener screening.Screener,
	broker realtime.Broker,
	producer kafka.Producer,
) PostService {
	return &PostServiceImpl{
		postRepo:       postRepo,
		postActionRepo: postActionRepo,
		communityRepo:  communityRepo,
		screener:       screener,
		broker:         broker,
		producer:       producer,
	}
}

// CreatePost validates, screens, persists, then announces the post
func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	combined := strings.TrimSpace(title + " " + content)
	if combined == "" {
		return nil, ErrPostEmpty
	}
	if req.CommunityID != nil {
		community, err := s.communityRepo.GetCommunityByID(ctx, *req.CommunityID)
		if err != nil {
			return nil, err
		}
		if community == nil {
			return nil, ErrCommunityNotFound
		}
	}

	if err := s.screener.Check(ctx, combined); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:      userID,
		CommunityID: req.CommunityID,
		Title:       title,
		Content:     content,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
		Status:      model.StatusApproved,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	if full, err := s.postRepo.GetPostByID(ctx, post.ID); err == nil && full != nil {
		post = full
	}
	item := toPostDTO(post)

	runSideEffects(ctx, "create_post",
		func(ctx context.Context) error {
			s.broker.Broadcast(ctx, realtime.EventNewPost, item)
			return nil
		},
		func(ctx context.Context) error {
			return s.producer.Emit(ctx, kafka.ActivityEvent{Type: kafka.EventPostCreated, EntityID: post.ID, ActorID: userID})
		},
	)
	return item, nil
}

func (s *PostServiceImpl) GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	// pending and rejected posts are visible to their author only
	if post == nil || (post.Status != model.StatusApproved && post.UserID != viewerID) {
		return nil, ErrPostNotFound
	}
	items := []*dto.PostDTO{toPostDTO(post)}
	s.fillLiked(ctx, viewerID, items)
	return items[0], nil
}

// GetFeed approved posts newest first; cursor is the last id of the previous page
func (s *PostServiceImpl) GetFeed(ctx context.Context, viewerID, cursor uint64, limit int) (*dto.FeedDTO, error) {
	posts, err := s.postRepo.ListApproved(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostDTO(p))
	}
	s.fillLiked(ctx, viewerID, items)

	feed := &dto.FeedDTO{Posts: items}
	if len(posts) == limit && limit > 0 {
		feed.NextCursor = posts[len(posts)-1].ID
	}
	return feed, nil
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, userID, postID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, ErrPostEditForbidden
	}

	fields := make(map[string]any)
	title, content := post.Title, post.Content
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		fields["title"] = title
	}
	if req.Content != nil {
		content = strings.TrimSpace(*req.Content)
		fields["content"] = content
	}
	if len(fields) == 0 {
		return nil, ErrParamInvalid
	}
	combined := strings.TrimSpace(title + " " + content)
	if combined == "" {
		return nil, ErrPostEmpty
	}
	if err = s.screener.Check(ctx, combined); err != nil {
		return nil, err
	}

	if err = s.postRepo.UpdatePostFields(ctx, postID, fields); err != nil {
		return nil, err
	}
	post.Title, post.Content = title, content

	runSideEffects(ctx, "update_post", func(ctx context.Context) error {
		return s.producer.Emit(ctx, kafka.ActivityEvent{Type: kafka.EventPostUpdated, EntityID: postID, ActorID: userID})
	})
	return toPostDTO(post), nil
}

// DeletePost removes an owned post with its likes and comments
func (s *PostServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if postID == 0 {
		return ErrParamInvalid
	}
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrPostDeleteForbidden
	}

	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	runSideEffects(ctx, "delete_post",
		func(ctx context.Context) error {
			s.broker.Broadcast(ctx, realtime.EventPostDeleted, postID)
			return nil
		},
		func(ctx context.Context) error {
			return s.producer.Emit(ctx, kafka.ActivityEvent{Type: kafka.EventPostDeleted, EntityID: postID, ActorID: userID})
		},
	)
	return nil
}

func (s *PostServiceImpl) ListPending(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.ListByStatus(ctx, model.StatusPending, consts.ModerationQueueCap)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostDTO(p))
	}
	return items, nil
}

// ModeratePost sets an admin verdict; a rejected post disappears from clients' feeds
func (s *PostServiceImpl) ModeratePost(ctx context.Context, postID uint64, status string) error {
	if status != model.StatusApproved && status != model.StatusRejected {
		return ErrParamInvalid
	}
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if err = s.postRepo.UpdatePostFields(ctx, postID, map[string]any{"status": status}); err != nil {
		return err
	}

	runSideEffects(ctx, "moderate_post",
		func(ctx context.Context) error {
			if status == model.StatusRejected {
				s.broker.Broadcast(ctx, realtime.EventPostDeleted, postID)
			}
			return nil
		},
		func(ctx context.Context) error {
			return s.producer.Emit(ctx, kafka.ActivityEvent{Type: kafka.EventPostUpdated, EntityID: postID})
		},
	)
	return nil
}

func (s *PostServiceImpl) fillLiked(ctx context.Context, viewerID uint64, items []*dto.PostDTO) {
	if viewerID == 0 || len(items) == 0 {
		return
	}
	ids := make([]uint64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	liked, err := s.postActionRepo.GetLikedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return
	}
	set := make(map[uint64]struct{}, len(liked))
	for _, id := range liked {
		set[id] = struct{}{}
	}
	for _, it := range items {
		_, it.IsLiked = set[it.ID]
	}
}
