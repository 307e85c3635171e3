package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arlo/tweetsmith/internal/auth"
	"github.com/arlo/tweetsmith/internal/domain"
	"github.com/arlo/tweetsmith/internal/logger"
	"github.com/arlo/tweetsmith/internal/prompts"
	"github.com/arlo/tweetsmith/internal/repository"
)

// historyLimit caps how many records the history listing returns.
const historyLimit = 50

// TweetService orchestrates the tweet lifecycle: generation and improvement
// through the completion API, plus history management over persisted records.
// Every operation resolves the caller's identity first; nothing is written
// and no model call happens for unauthenticated requests.
type TweetService struct {
	repo      *repository.TweetRepository
	generator TextGenerator
	identity  auth.Identity
	logger    *logger.Logger
}

// NewTweetService creates a new tweet service.
// Parameters:
//   - repo: tweet repository.
//   - generator: completion client for text generation.
//   - identity: caller identity resolver.
//   - log: logger instance.
// Returns:
//   - *TweetService: initialized service.
func NewTweetService(
	repo *repository.TweetRepository,
	generator TextGenerator,
	identity auth.Identity,
	log *logger.Logger,
) *TweetService {
	return &TweetService{
		repo:      repo,
		generator: generator,
		identity:  identity,
		logger:    log,
	}
}

// Generate produces a new tweet from a topic prompt and persists it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prompt: non-empty topic text.
// Returns:
//   - string: generated tweet text.
//   - error: ErrUnauthenticated, ErrGenerationFailed, or a storage error.
func (s *TweetService) Generate(ctx context.Context, prompt string) (string, error) {
	userID, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := s.generator.Complete(ctx,
		prompts.GenerateSystemPrompt,
		prompts.GenerateUserPrompt(prompt),
		prompts.MaxTokens,
		prompts.GenerateTemperature,
	)
	if err != nil {
		logger.CtxWarn(ctx, "Tweet generation failed: prompt=%q, error=%v", prompt, err)
		return "", err
	}

	tweet := &domain.Tweet{
		UserID:         userID,
		GeneratedTweet: text,
		Prompt:         &prompt,
		Type:           domain.TweetTypeGenerated,
		IsFavorite:     false,
	}
	if err := s.repo.Create(ctx, tweet); err != nil {
		return "", fmt.Errorf("failed to save generated tweet: %w", err)
	}

	logger.CtxInfo(ctx, "Tweet generated: tweet_id=%s, chars=%d, duration_ms=%d",
		tweet.ID, domain.CharCount(text), time.Since(start).Milliseconds())
	return text, nil
}

// Improve rewrites an existing tweet for clarity and engagement, persisting
// the result with the original text preserved.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - original: non-empty tweet text to improve.
// Returns:
//   - string: improved tweet text.
//   - error: ErrUnauthenticated, ErrGenerationFailed, or a storage error.
func (s *TweetService) Improve(ctx context.Context, original string) (string, error) {
	userID, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := s.generator.Complete(ctx,
		prompts.ImproveSystemPrompt,
		prompts.ImproveUserPrompt(original),
		prompts.MaxTokens,
		prompts.ImproveTemperature,
	)
	if err != nil {
		logger.CtxWarn(ctx, "Tweet improvement failed: error=%v", err)
		return "", err
	}

	tweet := &domain.Tweet{
		UserID:         userID,
		OriginalTweet:  &original,
		GeneratedTweet: text,
		Type:           domain.TweetTypeImproved,
		IsFavorite:     false,
	}
	if err := s.repo.Create(ctx, tweet); err != nil {
		return "", fmt.Errorf("failed to save improved tweet: %w", err)
	}

	logger.CtxInfo(ctx, "Tweet improved: tweet_id=%s, chars=%d, duration_ms=%d",
		tweet.ID, domain.CharCount(text), time.Since(start).Milliseconds())
	return text, nil
}

// List returns the caller's history, newest first, capped at 50 records.
// Anonymous callers get an empty list rather than an error, matching the
// signed-out UI state.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Tweet: up to 50 records, newest first.
//   - error: non-nil if the query fails.
func (s *TweetService) List(ctx context.Context) ([]domain.Tweet, error) {
	userID, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return []domain.Tweet{}, nil
	}
	return s.repo.ListByUser(ctx, userID, historyLimit)
}

// ToggleFavorite flips the favorite flag on one of the caller's tweets.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tweetID: record to toggle.
// Returns:
//   - error: ErrUnauthenticated, ErrNotFoundOrUnauthorized, or a storage error.
func (s *TweetService) ToggleFavorite(ctx context.Context, tweetID string) error {
	userID, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.repo.ToggleFavorite(ctx, tweetID, userID)
}

// Delete removes one of the caller's tweets.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tweetID: record to delete.
// Returns:
//   - error: ErrUnauthenticated, ErrNotFoundOrUnauthorized, or a storage error.
func (s *TweetService) Delete(ctx context.Context, tweetID string) error {
	userID, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tweetID, userID); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "Tweet deleted: tweet_id=%s", tweetID)
	return nil
}
