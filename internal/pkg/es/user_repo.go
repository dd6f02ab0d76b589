package es

import (
	"Bastion/internal/model"
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type UserRepo interface {
	IndexUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id uint64) error
	SearchUsers(ctx context.Context, keyword string, size int) ([]uint64, error)
}

type UserRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewUserRepo(client *elasticsearch.TypedClient, index string) UserRepo {
	return &UserRepoImpl{client: client, index: index}
}

func (s *UserRepoImpl) IndexUser(ctx context.Context, user *model.User) error {
	doc := &UserDoc{
		ID:        user.ID,
		Username:  user.Username,
		Fullname:  user.Fullname,
		Bio:       user.Bio,
		Location:  user.Location,
		UpdatedAt: user.UpdatedAt,
	}
	return indexDoc(ctx, s.client, s.index, user.ID, doc, user.UpdatedAt.UnixMilli())
}

func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	return deleteDoc(ctx, s.client, s.index, id)
}

func (s *UserRepoImpl) SearchUsers(ctx context.Context, keyword string, size int) ([]uint64, error) {
	req := s.client.Search().Index(s.index).Size(size)
	req.Query(&types.Query{
		MultiMatch: &types.MultiMatchQuery{
			Query:  keyword,
			Fields: []string{"username^3", "fullname^2", "bio"},
		},
	})
	return searchIDs(ctx, req)
}
