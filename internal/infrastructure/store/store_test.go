package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	err := s.Save(ctx, "cartItems", payload{Name: "books", Count: 3})
	require.NoError(t, err)

	var got payload
	found, err := s.Load(ctx, "cartItems", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "books", Count: 3}, got)
}

func TestMemoryStore_AbsentKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var got payload
	found, err := s.Load(ctx, "userAuth", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Save(ctx, "adminAuth", payload{Name: "admin"}))
	require.NoError(t, s.Delete(ctx, "adminAuth"))

	var got payload
	found, err := s.Load(ctx, "adminAuth", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is still fine
	assert.NoError(t, s.Delete(ctx, "adminAuth"))
}

func TestMemoryStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	s.SaveRaw("cartItems", []byte("{not json"))

	var got payload
	found, err := s.Load(ctx, "cartItems", &got)
	assert.False(t, found)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestWithPrefix_ScopesKeys(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()

	alice := WithPrefix(base, "session:alice:")
	bob := WithPrefix(base, "session:bob:")

	require.NoError(t, alice.Save(ctx, "cartItems", payload{Name: "alice", Count: 1}))
	require.NoError(t, bob.Save(ctx, "cartItems", payload{Name: "bob", Count: 2}))

	var got payload
	found, err := alice.Load(ctx, "cartItems", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", got.Name)

	assert.True(t, base.Has("session:alice:cartItems"))
	assert.True(t, base.Has("session:bob:cartItems"))

	require.NoError(t, alice.Delete(ctx, "cartItems"))
	assert.False(t, base.Has("session:alice:cartItems"))
	assert.True(t, base.Has("session:bob:cartItems"))
}
