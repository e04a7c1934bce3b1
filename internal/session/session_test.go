package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioadmin/folioadmin-go/internal/crypto"
	"github.com/folioadmin/folioadmin-go/internal/localstore"
)

func issue(t *testing.T, expiry time.Duration) string {
	t.Helper()
	token, err := crypto.NewTokenIssuer("secret", expiry).Issue(3, "carl")
	require.NoError(t, err)
	return token
}

func TestLoad_NoToken(t *testing.T) {
	h := NewHolder(localstore.NewMemory(), zerolog.Nop())

	_, err := h.Load(context.Background())

	assert.ErrorIs(t, err, ErrNoSession)
	_, ok := h.Current()
	assert.False(t, ok)
}

func TestLoad_DecodesStoredToken(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	require.NoError(t, store.Set(ctx, TokenKey, issue(t, time.Hour)))
	h := NewHolder(store, zerolog.Nop())

	s, err := h.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), s.UserID)
	assert.Equal(t, "carl", s.Username)
	cur, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, s, cur)
}

func TestLoad_UndecodableTokenIsCleared(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	require.NoError(t, store.Set(ctx, TokenKey, "garbage"))
	h := NewHolder(store, zerolog.Nop())

	_, err := h.Load(ctx)

	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestLoad_ExpiredTokenIsCleared(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	require.NoError(t, store.Set(ctx, TokenKey, issue(t, time.Hour)))
	h := NewHolder(store, zerolog.Nop())
	h.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := h.Load(ctx)

	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestCreate_PersistsToken(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	h := NewHolder(store, zerolog.Nop())
	token := issue(t, time.Hour)

	s, err := h.Create(ctx, token)

	require.NoError(t, err)
	assert.Equal(t, "carl", s.Username)
	stored, err := store.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestCreate_RejectsGarbage(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	h := NewHolder(store, zerolog.Nop())

	_, err := h.Create(ctx, "garbage")

	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(localstore.NewMemory(), zerolog.Nop())
	_, err := h.Create(ctx, issue(t, time.Hour))
	require.NoError(t, err)

	require.NoError(t, h.Clear(ctx))

	_, ok := h.Current()
	assert.False(t, ok)
	_, err = h.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, Session{}.Expired(now))
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
	assert.False(t, Session{ExpiresAt: now.Add(time.Second)}.Expired(now))
}
