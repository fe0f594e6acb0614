package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "listing-frontdesk/internal/common/errors"
)

func TestIssueAndParse_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tests := []struct {
		name  string
		state State
	}{
		{"authenticated user", Authenticated(User{ID: "user-1", FullName: "Asha Rao", Type: "owner"})},
		{"guest user", Guest(User{ID: "guest-1", FullName: "Guest User", Type: "guest"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := m.Issue(tt.state)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			parsed, err := m.Parse(token)
			require.NoError(t, err)
			assert.Equal(t, tt.state, parsed)
		})
	}
}

func TestIssue_RefusesAbsentSession(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.Issue(Absent())
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.Issue(Authenticated(User{ID: "user-1"}))
	require.NoError(t, err)

	state, err := m.Parse(token)
	require.Error(t, err)
	assert.Equal(t, Absent(), state)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeSessionInvalid, stdErr.Code)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(Authenticated(User{ID: "user-1"}))
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	state, err := m.Parse("not.a.token")
	require.Error(t, err)
	assert.Equal(t, Absent(), state)
}

func TestUserID(t *testing.T) {
	assert.Empty(t, Absent().UserID())
	assert.Equal(t, "u1", Guest(User{ID: "u1"}).UserID())
	assert.Equal(t, "u2", Authenticated(User{ID: "u2"}).UserID())
}
