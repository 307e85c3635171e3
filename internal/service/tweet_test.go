package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/arlo/tweetsmith/internal/domain"
	"github.com/arlo/tweetsmith/internal/logger"
	"github.com/arlo/tweetsmith/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fixedIdentity always resolves to one user, or to nobody when id is empty.
type fixedIdentity struct {
	id string
}

func (f *fixedIdentity) CurrentUser(ctx context.Context) (string, error) {
	if f.id == "" {
		return "", domain.ErrUnauthenticated
	}
	return f.id, nil
}

// cannedGenerator returns a fixed completion and records what it was asked.
type cannedGenerator struct {
	text        string
	err         error
	calls       int
	system      string
	user        string
	maxTokens   int
	temperature float32
}

func (g *cannedGenerator) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	g.calls++
	g.system = system
	g.user = user
	g.maxTokens = maxTokens
	g.temperature = temperature
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func newTestService(t *testing.T, identity *fixedIdentity, gen *cannedGenerator) (*TweetService, *repository.TweetRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Tweet{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo := repository.NewTweetRepository(db)
	return NewTweetService(repo, gen, identity, logger.GetDefault()), repo
}

func TestTweetService_Generate(t *testing.T) {
	gen := &cannedGenerator{text: "Nothing beats a quiet coffee before the chaos starts."}
	svc, repo := newTestService(t, &fixedIdentity{id: "user-1"}, gen)
	ctx := context.Background()

	text, err := svc.Generate(ctx, "coffee morning routine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != gen.text {
		t.Errorf("expected returned text %q, got %q", gen.text, text)
	}

	// The generate profile reaches the model unchanged
	if gen.user != "Generate a tweet about: coffee morning routine" {
		t.Errorf("unexpected user prompt: %q", gen.user)
	}
	if gen.maxTokens != 100 {
		t.Errorf("expected max tokens 100, got %d", gen.maxTokens)
	}
	if gen.temperature != 0.8 {
		t.Errorf("expected temperature 0.8, got %v", gen.temperature)
	}

	tweets, err := repo.ListByUser(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("unexpected error listing: %v", err)
	}
	if len(tweets) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(tweets))
	}

	got := tweets[0]
	if got.Type != domain.TweetTypeGenerated {
		t.Errorf("expected type generated, got %s", got.Type)
	}
	if got.Prompt == nil || *got.Prompt != "coffee morning routine" {
		t.Errorf("expected prompt preserved, got %v", got.Prompt)
	}
	if got.OriginalTweet != nil {
		t.Errorf("expected original tweet absent, got %v", *got.OriginalTweet)
	}
	if got.GeneratedTweet != text {
		t.Errorf("persisted text %q differs from returned %q", got.GeneratedTweet, text)
	}
	if got.IsFavorite {
		t.Error("new records must not be favorited")
	}
}

func TestTweetService_Improve(t *testing.T) {
	gen := &cannedGenerator{text: "AI isn't just cool — it's reshaping how we work and think."}
	svc, repo := newTestService(t, &fixedIdentity{id: "user-1"}, gen)
	ctx := context.Background()

	text, err := svc.Improve(ctx, "I think AI is cool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", gen.temperature)
	}

	tweets, err := repo.ListByUser(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("unexpected error listing: %v", err)
	}
	if len(tweets) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(tweets))
	}

	got := tweets[0]
	if got.Type != domain.TweetTypeImproved {
		t.Errorf("expected type improved, got %s", got.Type)
	}
	if got.OriginalTweet == nil || *got.OriginalTweet != "I think AI is cool" {
		t.Errorf("expected original tweet preserved, got %v", got.OriginalTweet)
	}
	if got.Prompt != nil {
		t.Errorf("expected prompt absent, got %v", *got.Prompt)
	}
	if got.GeneratedTweet != text {
		t.Errorf("persisted text %q differs from returned %q", got.GeneratedTweet, text)
	}
}

func TestTweetService_Unauthenticated(t *testing.T) {
	gen := &cannedGenerator{text: "should never be used"}
	svc, repo := newTestService(t, &fixedIdentity{}, gen)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "anything"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Generate: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Improve(ctx, "anything"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Improve: expected ErrUnauthenticated, got %v", err)
	}
	if err := svc.ToggleFavorite(ctx, "some-id"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("ToggleFavorite: expected ErrUnauthenticated, got %v", err)
	}
	if err := svc.Delete(ctx, "some-id"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Delete: expected ErrUnauthenticated, got %v", err)
	}

	// No model call and no writes happened
	if gen.calls != 0 {
		t.Errorf("expected zero model calls, got %d", gen.calls)
	}
	count, err := repo.CountByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error counting: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no persisted records, got %d", count)
	}

	// Listing degrades to an empty result instead of failing
	tweets, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tweets) != 0 {
		t.Errorf("expected empty history, got %d records", len(tweets))
	}
}

func TestTweetService_GenerationFailurePersistsNothing(t *testing.T) {
	gen := &cannedGenerator{err: fmt.Errorf("%w: upstream unavailable", domain.ErrGenerationFailed)}
	svc, repo := newTestService(t, &fixedIdentity{id: "user-1"}, gen)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "coffee"); !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}

	count, err := repo.CountByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error counting: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no persisted records after failure, got %d", count)
	}
}

func TestTweetService_ListCapsAtFifty(t *testing.T) {
	gen := &cannedGenerator{text: "tweet"}
	svc, repo := newTestService(t, &fixedIdentity{id: "user-1"}, gen)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		prompt := fmt.Sprintf("topic %d", i)
		tweet := &domain.Tweet{
			UserID:         "user-1",
			GeneratedTweet: fmt.Sprintf("tweet %d", i),
			Prompt:         &prompt,
			Type:           domain.TweetTypeGenerated,
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Create(ctx, tweet); err != nil {
			t.Fatalf("failed to seed tweet: %v", err)
		}
	}

	tweets, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tweets) != 50 {
		t.Fatalf("expected history capped at 50, got %d", len(tweets))
	}
	if tweets[0].GeneratedTweet != "tweet 54" {
		t.Errorf("expected newest record first, got %q", tweets[0].GeneratedTweet)
	}
	for i := 1; i < len(tweets); i++ {
		if tweets[i].CreatedAt.After(tweets[i-1].CreatedAt) {
			t.Fatalf("records out of order at index %d", i)
		}
	}
}

func TestTweetService_OwnershipEnforced(t *testing.T) {
	gen := &cannedGenerator{text: "mine"}
	owner, repo := newTestService(t, &fixedIdentity{id: "user-1"}, gen)
	ctx := context.Background()

	if _, err := owner.Generate(ctx, "coffee"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tweets, err := repo.ListByUser(ctx, "user-1", 1)
	if err != nil || len(tweets) != 1 {
		t.Fatalf("expected one record, got %d (err %v)", len(tweets), err)
	}
	tweetID := tweets[0].ID

	intruder := NewTweetService(repo, gen, &fixedIdentity{id: "user-2"}, logger.GetDefault())

	if err := intruder.ToggleFavorite(ctx, tweetID); !errors.Is(err, domain.ErrNotFoundOrUnauthorized) {
		t.Errorf("ToggleFavorite: expected ErrNotFoundOrUnauthorized, got %v", err)
	}
	if err := intruder.Delete(ctx, tweetID); !errors.Is(err, domain.ErrNotFoundOrUnauthorized) {
		t.Errorf("Delete: expected ErrNotFoundOrUnauthorized, got %v", err)
	}

	// Record survives and is unchanged
	got, err := repo.GetByID(ctx, tweetID)
	if err != nil {
		t.Fatalf("record should still exist: %v", err)
	}
	if got.IsFavorite {
		t.Error("favorite flag must be unchanged after unauthorized toggle")
	}
}
