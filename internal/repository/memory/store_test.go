package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amminlb/corporateai/internal/domain"
	"github.com/amminlb/corporateai/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrCreate(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	sess, err := store.GetOrCreate(ctx, "96170000001")
	require.NoError(t, err)
	assert.Equal(t, "96170000001", sess.UserID)
	assert.Empty(t, sess.Messages)
	assert.False(t, sess.IsInsuranceContext)

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	// Second call returns the same session, not a new one.
	again, err := store.GetOrCreate(ctx, "96170000001")
	require.NoError(t, err)
	assert.Equal(t, sess.CreatedAt, again.CreatedAt)

	size, _ = store.Size(ctx)
	assert.Equal(t, 1, size)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	sess, err := store.GetOrCreate(ctx, "96170000002")
	require.NoError(t, err)

	sess.Append(domain.NewMessage(domain.RoleUser, "car insurance?"), 10)
	sess.IsInsuranceContext = true
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.GetOrCreate(ctx, "96170000002")
	require.NoError(t, err)
	assert.True(t, got.IsInsuranceContext)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "car insurance?", got.Messages[0].Content)
}

func TestStore_GetOrCreateReturnsSnapshot(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	sess, _ := store.GetOrCreate(ctx, "96170000003")
	sess.Append(domain.NewMessage(domain.RoleUser, "not saved"), 10)

	// Mutating the snapshot without Save must not leak into the store.
	got, _ := store.GetOrCreate(ctx, "96170000003")
	assert.Empty(t, got.Messages)
}

func TestStore_SweepExpired(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, _ = store.GetOrCreate(ctx, "stale-user")
	_, _ = store.GetOrCreate(ctx, "other-stale-user")

	// Sweeping with a clock past the idle threshold evicts both.
	evicted, err := store.SweepExpired(ctx, time.Now().Add(31*time.Minute), 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, evicted)

	// A session touched within the threshold survives.
	_, _ = store.GetOrCreate(ctx, "survivor")
	evicted, err = store.SweepExpired(ctx, time.Now(), 30*time.Minute)
	require.NoError(t, err)
	assert.Zero(t, evicted)

	size, _ := store.Size(ctx)
	assert.Equal(t, 1, size)
}

func TestStore_List(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := store.GetOrCreate(ctx, id)
		require.NoError(t, err)
	}

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	// List returns copies; mutating them must not affect the store.
	sessions[0].IsInsuranceContext = true
	fresh, _ := store.GetOrCreate(ctx, sessions[0].UserID)
	assert.False(t, fresh.IsInsuranceContext)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := string(rune('a' + n%5))
			sess, err := store.GetOrCreate(ctx, userID)
			if err != nil {
				t.Error(err)
				return
			}
			sess.Append(domain.NewMessage(domain.RoleUser, "hello"), 10)
			if err := store.Save(ctx, sess); err != nil {
				t.Error(err)
			}
			if _, err := store.SweepExpired(ctx, time.Now(), 30*time.Minute); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, size)
}
