package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_InitReadsPersistedValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, "s1", map[string]string{KeyUserID: "u1"}))

	sess := New("s1", store)
	require.NoError(t, sess.Init(ctx))

	assert.Equal(t, "u1", sess.UserID())
	assert.True(t, sess.SignedIn())
	assert.False(t, sess.IsAdmin())
}

func TestSession_AdminLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	sess := New("s1", store)
	require.NoError(t, sess.Init(ctx))

	require.NoError(t, sess.SignIn(ctx, "u1"))
	require.NoError(t, sess.AdminSignIn(ctx, "tok", "a1", "root"))
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, "root", sess.AdminUsername())
	assert.Equal(t, "a1", sess.AdminID())

	require.NoError(t, sess.AdminSignOut(ctx))
	assert.False(t, sess.IsAdmin())
	assert.Equal(t, "u1", sess.UserID(), "admin logout keeps the customer signed in")

	reloaded := New("s1", store)
	require.NoError(t, reloaded.Init(ctx))
	assert.Empty(t, reloaded.AdminToken())
	assert.Equal(t, "u1", reloaded.UserID())
}

func TestSession_ClearForgetsEverything(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	sess := New("s1", store)
	require.NoError(t, sess.Init(ctx))
	require.NoError(t, sess.SignIn(ctx, "u1"))
	require.NoError(t, sess.AdminSignIn(ctx, "tok", "a1", "root"))

	require.NoError(t, sess.Clear(ctx))

	assert.False(t, sess.SignedIn())
	assert.False(t, sess.IsAdmin())
	values, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSession_OrderSuccessMessageIsReadOnce(t *testing.T) {
	ctx := context.Background()
	sess := New("s1", NewMemoryStore(0))
	require.NoError(t, sess.Init(ctx))

	require.NoError(t, sess.SetOrderSuccessMessage(ctx, "Order placed successfully!"))

	msg, err := sess.TakeOrderSuccessMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Order placed successfully!", msg)

	msg, err = sess.TakeOrderSuccessMessage(ctx)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "s1", map[string]string{KeyUserID: "u1"}))

	values, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", values[KeyUserID])

	now = now.Add(2 * time.Minute)
	values, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, "s1", map[string]string{KeyUserID: "u1"}))

	values, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	values[KeyUserID] = "tampered"

	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", again[KeyUserID])
}
