package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arlo/tweetsmith/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TweetRepository handles tweet data operations. Ownership-sensitive
// mutations run the check and the write inside one transaction so a
// non-owner's request can never observe a success window.
type TweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new TweetRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *TweetRepository: repository instance bound to db.
func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// Create inserts a new tweet record, assigning its ID if unset.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tweet: tweet record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	if tweet.ID == "" {
		tweet.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(tweet).Error
}

// GetByID retrieves a tweet by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tweet ID.
// Returns:
//   - *domain.Tweet: tweet record if found.
//   - error: non-nil if lookup fails.
func (r *TweetRepository) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// ListByUser retrieves the newest tweets owned by a user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner to filter by.
//   - limit: maximum number of records to return.
// Returns:
//   - []domain.Tweet: matching records ordered by creation time descending.
//   - error: non-nil if the query fails.
func (r *TweetRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Tweet, error) {
	tweets := make([]domain.Tweet, 0, limit)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// CountByUser counts tweets owned by a user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner to filter by.
// Returns:
//   - int64: number of records.
//   - error: non-nil if the query fails.
func (r *TweetRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Tweet{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ToggleFavorite flips the favorite flag on a tweet owned by callerID.
// The fetch and the update run in one transaction; a missing record and a
// record owned by someone else both fail with ErrNotFoundOrUnauthorized.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tweet ID to toggle.
//   - callerID: user performing the toggle.
// Returns:
//   - error: non-nil if the tweet is absent, not owned, or the update fails.
func (r *TweetRepository) ToggleFavorite(ctx context.Context, id, callerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tweet, err := lockOwned(tx, id, callerID)
		if err != nil {
			return err
		}
		if err := tx.Model(tweet).Update("is_favorite", !tweet.IsFavorite).Error; err != nil {
			return fmt.Errorf("failed to update favorite flag: %w", err)
		}
		return nil
	})
}

// Delete removes a tweet owned by callerID.
// Same transactional ownership semantics as ToggleFavorite.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tweet ID to delete.
//   - callerID: user performing the delete.
// Returns:
//   - error: non-nil if the tweet is absent, not owned, or the delete fails.
func (r *TweetRepository) Delete(ctx context.Context, id, callerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tweet, err := lockOwned(tx, id, callerID)
		if err != nil {
			return err
		}
		if err := tx.Delete(tweet).Error; err != nil {
			return fmt.Errorf("failed to delete tweet: %w", err)
		}
		return nil
	})
}

// lockOwned fetches a tweet scoped to its owner inside a transaction.
// Absent records and foreign-owned records are indistinguishable to the
// caller, so other users' tweet IDs are never confirmed to exist.
func lockOwned(tx *gorm.DB, id, callerID string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := tx.First(&tweet, "id = ? AND user_id = ?", id, callerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("failed to fetch tweet: %w", err)
	}
	return &tweet, nil
}
