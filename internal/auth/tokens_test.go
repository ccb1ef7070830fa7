package auth

import (
	"fmt"
	"sync"
	"testing"
)

func TestTokenStore(t *testing.T) {
	s := NewTokenStore()

	first := s.Issue("alice")
	if user, ok := s.Lookup(first); !ok || user != "alice" {
		t.Fatalf("Lookup(first) = %q, %v", user, ok)
	}

	second := s.Issue("alice")
	if first == second {
		t.Fatal("tokens should be random")
	}
	if _, ok := s.Lookup(first); ok {
		t.Error("re-issuing must revoke the previous token")
	}
	if user, ok := s.Lookup(second); !ok || user != "alice" {
		t.Errorf("Lookup(second) = %q, %v", user, ok)
	}

	s.Revoke("alice")
	if _, ok := s.Lookup(second); ok {
		t.Error("revoked token still valid")
	}
	if _, ok := s.Lookup(""); ok {
		t.Error("empty token accepted")
	}
}

func TestTokenStoreConcurrent(t *testing.T) {
	s := NewTokenStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user%d", i%5)
			tok := s.Issue(user)
			s.Lookup(tok)
		}(i)
	}
	wg.Wait()

	if len(s.byUser) != 5 || len(s.byTok) != 5 {
		t.Errorf("byUser=%d byTok=%d, want one token per user", len(s.byUser), len(s.byTok))
	}
}
