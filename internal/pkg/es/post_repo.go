package es

import (
	"Bastion/internal/model"
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type PostRepo interface {
	IndexPost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
	SearchPosts(ctx context.Context, keyword string, size int) ([]uint64, error)
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewPostRepo(client *elasticsearch.TypedClient, index string) PostRepo {
	return &PostRepoImpl{client: client, index: index}
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *model.Post) error {
	doc := &PostDoc{
		ID:          post.ID,
		UserID:      post.UserID,
		CommunityID: post.CommunityID,
		Title:       post.Title,
		Content:     post.Content,
		Status:      post.Status,
		LikeCount:   post.LikeCount,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if post.User != nil {
		doc.Username = post.User.Username
	}
	return indexDoc(ctx, s.client, s.index, post.ID, doc, post.UpdatedAt.UnixMilli())
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return deleteDoc(ctx, s.client, s.index, id)
}

// SearchPosts matches approved posts on title and content, title weighted higher
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, size int) ([]uint64, error) {
	req := s.client.Search().Index(s.index).Size(size)
	req.Query(&types.Query{
		Bool: &types.BoolQuery{
			Filter: []types.Query{
				{Term: map[string]types.TermQuery{"status": {Value: model.StatusApproved}}},
			},
			Must: []types.Query{
				{MultiMatch: &types.MultiMatchQuery{
					Query:  keyword,
					Fields: []string{"title^2", "content", "username"},
				}},
			},
		},
	})
	return searchIDs(ctx, req)
}
