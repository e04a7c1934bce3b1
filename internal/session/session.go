// Package session keeps the bearer token of the signed-in administrator.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/folioadmin/folioadmin-go/internal/crypto"
	"github.com/folioadmin/folioadmin-go/internal/localstore"
)

// TokenKey is the local storage key holding the bearer token.
const TokenKey = "token"

var (
	ErrNoSession    = errors.New("no session")
	ErrInvalidToken = errors.New("session token is invalid")
)

// Session is a decoded bearer token.
type Session struct {
	Token     string
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Holder loads, creates and clears the session stored in a localstore.Store.
type Holder struct {
	store localstore.Store
	log   zerolog.Logger
	now   func() time.Time

	mu      sync.RWMutex
	current *Session
}

// NewHolder creates a Holder backed by store.
func NewHolder(store localstore.Store, log zerolog.Logger) *Holder {
	return &Holder{store: store, log: log, now: time.Now}
}

// Load reads and decodes the stored token. A token that cannot be decoded,
// or whose expiry has passed, is removed from storage.
func (h *Holder) Load(ctx context.Context) (Session, error) {
	token, err := h.store.Get(ctx, TokenKey)
	if errors.Is(err, localstore.ErrNotFound) || (err == nil && token == "") {
		h.forget()
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read token: %w", err)
	}

	s, err := h.decode(token)
	if err != nil {
		h.log.Warn().Err(err).Msg("discarding stored token")
		if cerr := h.Clear(ctx); cerr != nil {
			h.log.Error().Err(cerr).Msg("failed to clear session")
		}
		return Session{}, ErrInvalidToken
	}

	h.set(&s)
	return s, nil
}

// Create decodes token and persists it as the current session. Undecodable
// tokens are rejected and nothing is stored.
func (h *Holder) Create(ctx context.Context, token string) (Session, error) {
	s, err := h.decode(token)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	if err := h.store.Set(ctx, TokenKey, token); err != nil {
		return Session{}, fmt.Errorf("store token: %w", err)
	}

	h.set(&s)
	h.log.Info().Str("username", s.Username).Msg("session created")
	return s, nil
}

// Clear removes the stored token and forgets the current session.
func (h *Holder) Clear(ctx context.Context) error {
	h.forget()
	if err := h.store.Remove(ctx, TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Current returns the session loaded or created last, if any.
func (h *Holder) Current() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Session{}, false
	}
	return *h.current, true
}

func (h *Holder) decode(token string) (Session, error) {
	claims, err := crypto.Decode(token)
	if err != nil {
		return Session{}, err
	}

	s := Session{Token: token, UserID: claims.ID, Username: claims.Username}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	if s.Expired(h.now()) {
		return Session{}, crypto.ErrInvalidToken
	}
	return s, nil
}

func (h *Holder) set(s *Session) {
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}

func (h *Holder) forget() {
	h.set(nil)
}
