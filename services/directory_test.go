package services

import (
	"testing"

	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveActor(t *testing.T) {
	db := setupTestDB(t)
	profile, _ := seedAdvocate(t, db, "adv@example.com")

	t.Run("maps identity to actor", func(t *testing.T) {
		actor, err := ResolveActor(db, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, actor.ID)
		assert.Equal(t, models.RoleAdvocate, actor.Role)
	})

	t.Run("identity without profile is a configuration fault", func(t *testing.T) {
		_, err := ResolveActor(db, "identity-with-no-profile")
		assert.ErrorIs(t, err, errs.ErrProfileMissing)
	})

	t.Run("empty id is unauthenticated", func(t *testing.T) {
		_, err := ResolveActor(db, "")
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("member actor carries the owning advocate", func(t *testing.T) {
		member, _ := seedMember(t, db, profile.ID, "member@example.com", models.RoleAssociate)
		actor, err := ResolveActor(db, member.ID)
		require.NoError(t, err)
		require.NotNil(t, actor.AdvocateID)
		assert.Equal(t, profile.ID, *actor.AdvocateID)
	})
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	_, advocate := seedAdvocate(t, db, "adv@example.com")
	_, foreign := seedAdvocate(t, db, "foreign@example.com")
	member, memberActor := seedMember(t, db, advocate.ID, "member@example.com", models.RoleClient)
	peer, _ := seedMember(t, db, advocate.ID, "peer@example.com", models.RoleAssociate)

	t.Run("self", func(t *testing.T) {
		got, err := GetProfile(db, memberActor, member.ID)
		require.NoError(t, err)
		assert.Equal(t, member.ID, got.ID)
	})

	t.Run("advocate reads an owned member", func(t *testing.T) {
		got, err := GetProfile(db, advocate, member.ID)
		require.NoError(t, err)
		assert.Equal(t, member.ID, got.ID)
	})

	t.Run("foreign advocate reads not found", func(t *testing.T) {
		_, err := GetProfile(db, foreign, member.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("members cannot read each other", func(t *testing.T) {
		_, err := GetProfile(db, memberActor, peer.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestUpdateOwnProfile(t *testing.T) {
	db := setupTestDB(t)
	profile, actor := seedAdvocate(t, db, "adv@example.com")

	updated, err := UpdateOwnProfile(db, actor, "New Name", "+34 600 000 000")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "+34 600 000 000", updated.Phone)

	// Role and email survive untouched
	var reloaded models.Profile
	require.NoError(t, db.First(&reloaded, "id = ?", profile.ID).Error)
	assert.Equal(t, models.RoleAdvocate, reloaded.Role)
	assert.Equal(t, "adv@example.com", reloaded.Email)

	_, err = UpdateOwnProfile(db, actor, "", "")
	assert.True(t, errs.IsValidation(err))
}

func TestListMembers(t *testing.T) {
	db := setupTestDB(t)
	_, advocate := seedAdvocate(t, db, "adv@example.com")
	_, foreign := seedAdvocate(t, db, "foreign@example.com")
	seedMember(t, db, advocate.ID, "a-assoc@example.com", models.RoleAssociate)
	seedMember(t, db, advocate.ID, "b-client@example.com", models.RoleClient)
	seedMember(t, db, foreign.ID, "theirs@example.com", models.RoleClient)

	t.Run("lists own members only", func(t *testing.T) {
		members, err := ListMembers(db, advocate, "")
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("role filter", func(t *testing.T) {
		clients, err := ListMembers(db, advocate, models.RoleClient)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, "b-client@example.com", clients[0].Email)
	})

	t.Run("invalid role filter", func(t *testing.T) {
		_, err := ListMembers(db, advocate, "superuser")
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("non-advocate is forbidden", func(t *testing.T) {
		_, memberActor := seedMember(t, db, advocate.ID, "nosy@example.com", models.RoleAssociate)
		_, err := ListMembers(db, memberActor, "")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}
