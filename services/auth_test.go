package services

import (
	"testing"
	"time"

	"advocate_desk_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	token1, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, token1, SessionTokenLength*2)

	token2, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, token1, token2)
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	profile, _ := seedAdvocate(t, db, "adv@example.com")

	session, err := CreateSession(db, profile.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	t.Run("validate returns the session", func(t *testing.T) {
		got, err := ValidateSession(db, session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
	})

	t.Run("unknown token fails", func(t *testing.T) {
		_, err := ValidateSession(db, "not-a-token")
		assert.Error(t, err)
	})

	t.Run("delete invalidates the token", func(t *testing.T) {
		require.NoError(t, DeleteSession(db, session.Token))
		_, err := ValidateSession(db, session.Token)
		assert.Error(t, err)
	})
}

func TestValidateSession_ExpiredIsRejectedAndRemoved(t *testing.T) {
	db := setupTestDB(t)
	profile, _ := seedAdvocate(t, db, "adv@example.com")

	session, err := CreateSession(db, profile.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)

	require.NoError(t, db.Model(session).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count, "expired session must be removed on validation")
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	profile, _ := seedAdvocate(t, db, "adv@example.com")

	fresh, err := CreateSession(db, profile.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)

	stale, err := CreateSession(db, profile.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NoError(t, db.Model(stale).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	require.NoError(t, CleanupExpiredSessions(db))

	var remaining []models.Session
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)
}

func TestDeleteAllUserSessions(t *testing.T) {
	db := setupTestDB(t)
	profile, _ := seedAdvocate(t, db, "adv@example.com")
	other, _ := seedAdvocate(t, db, "other@example.com")

	_, err := CreateSession(db, profile.ID, "127.0.0.1", "a")
	require.NoError(t, err)
	_, err = CreateSession(db, profile.ID, "127.0.0.1", "b")
	require.NoError(t, err)
	keep, err := CreateSession(db, other.ID, "127.0.0.1", "c")
	require.NoError(t, err)

	require.NoError(t, DeleteAllUserSessions(db, profile.ID))

	var remaining []models.Session
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)
}
