package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arlo/tweetsmith/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) *TweetRepository {
	t.Helper()

	// cache=shared keeps the in-memory database alive across pooled
	// connections; the name isolates tests from each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Tweet{}))

	return NewTweetRepository(db)
}

func strPtr(s string) *string { return &s }

func seedTweet(t *testing.T, repo *TweetRepository, userID string, createdAt time.Time) *domain.Tweet {
	t.Helper()

	tweet := &domain.Tweet{
		UserID:         userID,
		GeneratedTweet: "Nothing beats a quiet coffee before the chaos starts.",
		Prompt:         strPtr("coffee morning routine"),
		Type:           domain.TweetTypeGenerated,
		CreatedAt:      createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), tweet))
	return tweet
}

func TestTweetRepository_CreateAssignsID(t *testing.T) {
	repo := setupTestRepo(t)

	tweet := seedTweet(t, repo, "user-1", time.Now())
	assert.NotEmpty(t, tweet.ID)

	got, err := repo.GetByID(context.Background(), tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domain.TweetTypeGenerated, got.Type)
	assert.False(t, got.IsFavorite)
	require.NotNil(t, got.Prompt)
	assert.Equal(t, "coffee morning routine", *got.Prompt)
	assert.Nil(t, got.OriginalTweet)
}

func TestTweetRepository_ListByUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	oldest := seedTweet(t, repo, "user-1", base)
	middle := seedTweet(t, repo, "user-1", base.Add(time.Minute))
	newest := seedTweet(t, repo, "user-1", base.Add(2*time.Minute))
	seedTweet(t, repo, "user-2", base.Add(3*time.Minute))

	t.Run("newest first, scoped to owner", func(t *testing.T) {
		tweets, err := repo.ListByUser(ctx, "user-1", 50)
		require.NoError(t, err)
		require.Len(t, tweets, 3)
		assert.Equal(t, newest.ID, tweets[0].ID)
		assert.Equal(t, middle.ID, tweets[1].ID)
		assert.Equal(t, oldest.ID, tweets[2].ID)
	})

	t.Run("limit applies", func(t *testing.T) {
		tweets, err := repo.ListByUser(ctx, "user-1", 2)
		require.NoError(t, err)
		require.Len(t, tweets, 2)
		assert.Equal(t, newest.ID, tweets[0].ID)
	})

	t.Run("no records yields empty slice", func(t *testing.T) {
		tweets, err := repo.ListByUser(ctx, "user-none", 50)
		require.NoError(t, err)
		assert.Empty(t, tweets)
	})
}

func TestTweetRepository_ToggleFavorite(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	tweet := seedTweet(t, repo, "user-1", time.Now())

	require.NoError(t, repo.ToggleFavorite(ctx, tweet.ID, "user-1"))
	got, err := repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)

	// Double application returns the flag to its original value
	require.NoError(t, repo.ToggleFavorite(ctx, tweet.ID, "user-1"))
	got, err = repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorite)
}

func TestTweetRepository_ToggleFavorite_NotOwner(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	tweet := seedTweet(t, repo, "user-1", time.Now())

	err := repo.ToggleFavorite(ctx, tweet.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrNotFoundOrUnauthorized)

	// Record unchanged
	got, gerr := repo.GetByID(ctx, tweet.ID)
	require.NoError(t, gerr)
	assert.False(t, got.IsFavorite)
}

func TestTweetRepository_ToggleFavorite_Absent(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.ToggleFavorite(context.Background(), "no-such-id", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFoundOrUnauthorized)
}

func TestTweetRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	tweet := seedTweet(t, repo, "user-1", time.Now())

	t.Run("not owner fails and preserves record", func(t *testing.T) {
		err := repo.Delete(ctx, tweet.ID, "user-2")
		assert.ErrorIs(t, err, domain.ErrNotFoundOrUnauthorized)

		_, gerr := repo.GetByID(ctx, tweet.ID)
		assert.NoError(t, gerr)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, tweet.ID, "user-1"))

		_, gerr := repo.GetByID(ctx, tweet.ID)
		assert.ErrorIs(t, gerr, gorm.ErrRecordNotFound)
	})
}

func TestTweetRepository_CountByUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seedTweet(t, repo, "user-1", time.Now())
	seedTweet(t, repo, "user-1", time.Now())
	seedTweet(t, repo, "user-2", time.Now())

	count, err := repo.CountByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
