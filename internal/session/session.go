// Package session holds the caller's identity for a request. The form
// controller receives a State explicitly instead of reading ambient storage.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "listing-frontdesk/internal/common/errors"
)

// Kind distinguishes the three session variants.
type Kind string

const (
	KindAbsent        Kind = "absent"
	KindGuest         Kind = "guest"
	KindAuthenticated Kind = "authenticated"
)

// User is the identity carried by a session.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Type     string `json:"userType"`
}

// State is the session context injected into request handling.
type State struct {
	Kind Kind
	User User
}

// Absent returns the no-session state.
func Absent() State {
	return State{Kind: KindAbsent}
}

// Guest returns a session backed by an auto-provisioned temporary account.
func Guest(user User) State {
	return State{Kind: KindGuest, User: user}
}

// Authenticated returns a session for a verified user.
func Authenticated(user User) State {
	return State{Kind: KindAuthenticated, User: user}
}

// UserID returns the user id or empty for absent sessions.
func (s State) UserID() string {
	if s.Kind == KindAbsent {
		return ""
	}
	return s.User.ID
}

// Manager issues and parses session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	FullName string `json:"fullName"`
	UserType string `json:"userType"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// Issue creates a signed token for the session state.
func (m *Manager) Issue(state State) (string, error) {
	if state.Kind == KindAbsent {
		return "", fmt.Errorf("cannot issue a token for an absent session")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		FullName: state.User.FullName,
		UserType: state.User.Type,
		Kind:     string(state.Kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   state.User.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and reconstructs the session state.
func (m *Manager) Parse(tokenStr string) (State, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Absent(), apperrors.NewSessionInvalidError(err.Error())
	}
	if !token.Valid {
		return Absent(), apperrors.NewSessionInvalidError("token is not valid")
	}

	user := User{ID: c.Subject, FullName: c.FullName, Type: c.UserType}
	if c.Kind == string(KindGuest) {
		return Guest(user), nil
	}
	return Authenticated(user), nil
}
