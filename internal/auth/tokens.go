// Package auth keeps the bearer tokens of logged-in users in memory.
package auth

import (
	"sync"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries the token.
const CookieName = "auth-token"

// TokenStore maps tokens to usernames. A user holds at most one token;
// issuing a new one revokes the previous. Safe for concurrent use.
type TokenStore struct {
	mu     sync.RWMutex
	byTok  map[string]string
	byUser map[string]string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		byTok:  make(map[string]string),
		byUser: make(map[string]string),
	}
}

// Issue creates a random token for username.
func (s *TokenStore) Issue(username string) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[username]; ok {
		delete(s.byTok, old)
	}
	s.byTok[token] = username
	s.byUser[username] = token
	return token
}

// Lookup returns the user a token belongs to.
func (s *TokenStore) Lookup(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byTok[token]
	return user, ok
}

// Revoke drops the token of username, if any.
func (s *TokenStore) Revoke(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok, ok := s.byUser[username]; ok {
		delete(s.byTok, tok)
		delete(s.byUser, username)
	}
}
