package server

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

const (
	tokenBytes      = 32
	DefaultTokenTTL = time.Hour
)

// Tokens issues and validates CSRF tokens. Each token is valid until it
// expires; validation does not consume it.
type Tokens struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	issued map[string]time.Time
}

func NewTokens(ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{ttl: ttl, now: time.Now, issued: make(map[string]time.Time)}
}

// Issue returns a fresh token and its expiry.
func (t *Tokens) Issue() (string, time.Time, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, err
	}
	token := base64.URLEncoding.EncodeToString(buf)

	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.prune(now)
	exp := now.Add(t.ttl)
	t.issued[token] = exp
	return token, exp, nil
}

func (t *Tokens) Valid(token string) bool {
	if token == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	exp, ok := t.issued[token]
	if !ok {
		return false
	}
	if !t.now().Before(exp) {
		delete(t.issued, token)
		return false
	}
	return true
}

func (t *Tokens) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.issued)
}

func (t *Tokens) prune(now time.Time) {
	for tok, exp := range t.issued {
		if !now.Before(exp) {
			delete(t.issued, tok)
		}
	}
}
