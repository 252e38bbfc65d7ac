package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Govind-619/BuyMeAChai/models"
	"github.com/Govind-619/BuyMeAChai/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	current := c.t
	c.t = c.t.Add(c.step)
	return current
}

func newTestStore(t *testing.T, dedupe bool, step time.Duration) *GormContributionStore {
	clock := &stepClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), step: step}
	return NewContributionStore(testutil.NewTestDB(t, dedupe)).WithClock(clock.now)
}

func contribution(n int) *models.Contribution {
	return &models.Contribution{
		UserID:    "user-1",
		Name:      fmt.Sprintf("Supporter %d", n),
		Message:   "Keep going",
		Amount:    30,
		OrderID:   fmt.Sprintf("order_%d", n),
		PaymentID: fmt.Sprintf("pay_%d", n),
	}
}

func names(cs []models.Contribution) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t, false, time.Second)
	ctx := context.Background()

	in := contribution(1)
	in.ID = 99
	saved, err := store.Append(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.NotEqual(t, uint(99), saved.ID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), saved.CreatedAt)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Supporter 1", got.Name)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestListRecentNewestFirst(t *testing.T) {
	store := newTestStore(t, false, time.Second)
	ctx := context.Background()

	empty, err := store.ListRecent(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := 1; i <= 3; i++ {
		_, err := store.Append(ctx, contribution(i))
		require.NoError(t, err)
	}

	recent, err := store.ListRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Supporter 3", "Supporter 2", "Supporter 1"}, names(recent))
}

func TestListRecentTiesBrokenByID(t *testing.T) {
	store := newTestStore(t, false, 0)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := store.Append(ctx, contribution(i))
		require.NoError(t, err)
	}

	recent, err := store.ListRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Supporter 3", "Supporter 2", "Supporter 1"}, names(recent))
}

func TestListPage(t *testing.T) {
	store := newTestStore(t, false, 0)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		_, err := store.Append(ctx, contribution(i))
		require.NoError(t, err)
	}

	first, err := store.ListPage(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Supporter 5", "Supporter 4"}, names(first))

	second, err := store.ListPage(ctx, first[1].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Supporter 3", "Supporter 2"}, names(second))

	last, err := store.ListPage(ctx, second[1].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Supporter 1"}, names(last))

	_, err = store.ListPage(ctx, 999, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t, false, time.Second)
	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendDuplicatePair(t *testing.T) {
	ctx := context.Background()

	t.Run("without dedupe index", func(t *testing.T) {
		store := newTestStore(t, false, time.Second)
		_, err := store.Append(ctx, contribution(1))
		require.NoError(t, err)
		_, err = store.Append(ctx, contribution(1))
		require.NoError(t, err)

		recent, err := store.ListRecent(ctx)
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("with dedupe index", func(t *testing.T) {
		store := newTestStore(t, true, time.Second)
		first, err := store.Append(ctx, contribution(1))
		require.NoError(t, err)

		again, err := store.Append(ctx, contribution(1))
		assert.ErrorIs(t, err, ErrAlreadyRecorded)
		require.NotNil(t, again)
		assert.Equal(t, first.ID, again.ID)

		recent, err := store.ListRecent(ctx)
		require.NoError(t, err)
		assert.Len(t, recent, 1)
	})
}
