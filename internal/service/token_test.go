package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, exp, err := m.Issue("google-oauth2|42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	owner, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "google-oauth2|42", owner)
}

func TestTokenManager_RejectsForeignAndExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, _, err := other.Issue("owner")
	require.NoError(t, err)
	_, err = m.ParseAccess(token)
	assert.Error(t, err)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := m.Issue("owner")
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.ParseAccess(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsEmptySubject(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, _, err := m.Issue("")
	assert.Error(t, err)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ParseAccess(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ParseAccess(raw)
	assert.Error(t, err)
}
