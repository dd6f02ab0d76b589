package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// community 1 "golang" is created by user 1; community 2 is literally named "2024"
func communityFixture() *fakeCommunityRepo {
	return newFakeCommunityRepo(
		&model.Community{ID: 1, Name: "golang", DisplayName: "Go", CreatorID: 1},
		&model.Community{ID: 2, Name: "2024", DisplayName: "Class of 2024", CreatorID: 2},
	)
}

func TestResolveNumericNameFallsBackToName(t *testing.T) {
	svc := NewCommunityService(communityFixture(), allowAll())
	ctx := context.Background()

	byID, err := svc.GetCommunity(ctx, 0, "1")
	require.NoError(t, err)
	assert.Equal(t, "golang", byID.Name)

	byName, err := svc.GetCommunity(ctx, 0, "2024")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), byName.ID)

	_, err = svc.GetCommunity(ctx, 0, "31337")
	assert.ErrorIs(t, err, ErrCommunityNotFound)
	_, err = svc.GetCommunity(ctx, 0, "  ")
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestJoinAndLeaveRules(t *testing.T) {
	repo := communityFixture()
	svc := NewCommunityService(repo, allowAll())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Leave(ctx, 1, "golang"), ErrCreatorCannotLeave)
	assert.ErrorIs(t, svc.Leave(ctx, 2, "golang"), ErrNotMember)

	require.NoError(t, svc.Join(ctx, 2, "golang"))
	assert.ErrorIs(t, svc.Join(ctx, 2, "golang"), ErrAlreadyMember)

	detail, err := svc.GetCommunity(ctx, 2, "golang")
	require.NoError(t, err)
	assert.True(t, detail.IsMember)
	assert.Equal(t, int64(2), detail.MemberCount)

	require.NoError(t, svc.Leave(ctx, 2, "golang"))
	assert.ErrorIs(t, svc.Leave(ctx, 2, "golang"), ErrNotMember)
	assert.ErrorIs(t, svc.Join(ctx, 0, "golang"), ErrAuthRequired)
}

func TestUpdateMemberRoleRules(t *testing.T) {
	repo := communityFixture()
	svc := NewCommunityService(repo, allowAll())
	ctx := context.Background()
	require.NoError(t, svc.Join(ctx, 2, "golang"))
	require.NoError(t, svc.Join(ctx, 3, "golang"))

	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, 1, "golang", 2, "owner"), ErrMemberRoleInvalid)
	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, 2, "golang", 3, model.MemberRoleModerator), ErrCommunityForbidden)
	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, 1, "golang", 1, model.MemberRoleMember), ErrCreatorRoleLocked)
	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, 1, "golang", 9, model.MemberRoleModerator), ErrNotMember)

	require.NoError(t, svc.UpdateMemberRole(ctx, 1, "golang", 2, model.MemberRoleAdmin))
	assert.Equal(t, model.MemberRoleAdmin, repo.members[[2]uint64{1, 2}].Role)

	// a promoted admin manages roles but still cannot touch the creator
	require.NoError(t, svc.UpdateMemberRole(ctx, 2, "golang", 3, model.MemberRoleModerator))
	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, 2, "golang", 1, model.MemberRoleMember), ErrCreatorRoleLocked)
}

func TestUpdateAndDeleteCommunityPermissions(t *testing.T) {
	repo := communityFixture()
	svc := NewCommunityService(repo, allowAll())
	ctx := context.Background()
	require.NoError(t, svc.Join(ctx, 2, "golang"))
	rename := &dto.UpdateCommunityDTO{DisplayName: strPtr("Gophers")}

	_, err := svc.UpdateCommunity(ctx, 2, "golang", rename)
	assert.ErrorIs(t, err, ErrCommunityForbidden)
	_, err = svc.UpdateCommunity(ctx, 0, "golang", rename)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, repo.updated)

	updated, err := svc.UpdateCommunity(ctx, 1, "golang", rename)
	require.NoError(t, err)
	assert.Equal(t, "Gophers", updated.DisplayName)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, map[string]any{"display_name": "Gophers"}, repo.updated[0])

	_, err = svc.UpdateCommunity(ctx, 1, "golang", &dto.UpdateCommunityDTO{})
	assert.ErrorIs(t, err, ErrParamInvalid)

	require.NoError(t, svc.UpdateMemberRole(ctx, 1, "golang", 2, model.MemberRoleAdmin))
	_, err = svc.UpdateCommunity(ctx, 2, "golang", &dto.UpdateCommunityDTO{Rules: strPtr("be kind")})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCommunity(ctx, 2, "golang"), ErrCommunityDeleteDenied)
	assert.Empty(t, repo.deleted)
	require.NoError(t, svc.DeleteCommunity(ctx, 1, "golang"))
	assert.Equal(t, []uint64{1}, repo.deleted)

	_, err = svc.GetCommunity(ctx, 0, "golang")
	assert.ErrorIs(t, err, ErrCommunityNotFound)
}
