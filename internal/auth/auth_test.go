package auth

import (
	"testing"
	"time"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/stretchr/testify/require"
)

func newManager() *TokenManager {
	return NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, Issuer: "test"})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", hash)
	require.True(t, CheckPassword(hash, "s3cret!"))
	require.False(t, CheckPassword(hash, "wrong"))
}

func TestIssueAndParse(t *testing.T) {
	m := newManager()
	user := &models.User{Role: models.RoleAdmin, Branches: []models.Branch{{Base: models.Base{ID: "b-1"}}}}
	user.ID = "u-1"

	token, expires, err := m.Issue(user)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID())
	require.True(t, claims.IsAdmin())
	require.Equal(t, []string{"b-1"}, claims.BranchIDs)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := newManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	user := &models.User{Role: models.RoleEmployee}
	user.ID = "u-2"

	token, _, err := m.Issue(user)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	user := &models.User{Role: models.RoleEmployee}
	user.ID = "u-3"

	token, _, err := NewTokenManager(config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour, Issuer: "test"}).Issue(user)
	require.NoError(t, err)

	_, err = newManager().Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = newManager().Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
