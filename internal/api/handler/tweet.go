package handler

import (
	"errors"
	"net/http"

	"github.com/arlo/tweetsmith/internal/domain"
	"github.com/arlo/tweetsmith/internal/service"
	"github.com/gin-gonic/gin"
)

// TweetHandler handles tweet lifecycle endpoints.
type TweetHandler struct {
	tweetService *service.TweetService
}

// NewTweetHandler creates a new tweet handler.
// Parameters:
//   - tweetService: tweet lifecycle service.
// Returns:
//   - *TweetHandler: initialized handler.
func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
	}
}

// GenerateRequest is the body for POST /api/v1/tweets/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ImproveRequest is the body for POST /api/v1/tweets/improve.
type ImproveRequest struct {
	OriginalTweet string `json:"original_tweet" binding:"required"`
}

// TweetResponse carries generated text plus the character-counter hints the
// UI renders. The length band never blocks anything; it is display-only.
type TweetResponse struct {
	Tweet      string            `json:"tweet"`
	CharCount  int               `json:"char_count"`
	LengthBand domain.LengthBand `json:"length_band"`
}

// TweetListItem is one history record in the list response.
type TweetListItem struct {
	domain.Tweet
	CharCount  int               `json:"char_count"`
	LengthBand domain.LengthBand `json:"length_band"`
}

// ListResponse is the body for GET /api/v1/tweets.
type ListResponse struct {
	Tweets []TweetListItem `json:"tweets"`
	Total  int             `json:"total"`
}

// Generate handles POST /api/v1/tweets/generate.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TweetHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	text, err := h.tweetService.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		writeServiceError(c, err, "generation failed, try again")
		return
	}

	c.JSON(http.StatusOK, TweetResponse{
		Tweet:      text,
		CharCount:  domain.CharCount(text),
		LengthBand: domain.BandFor(text),
	})
}

// Improve handles POST /api/v1/tweets/improve.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TweetHandler) Improve(c *gin.Context) {
	var req ImproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "original_tweet is required"})
		return
	}

	text, err := h.tweetService.Improve(c.Request.Context(), req.OriginalTweet)
	if err != nil {
		writeServiceError(c, err, "improvement failed, try again")
		return
	}

	c.JSON(http.StatusOK, TweetResponse{
		Tweet:      text,
		CharCount:  domain.CharCount(text),
		LengthBand: domain.BandFor(text),
	})
}

// List handles GET /api/v1/tweets.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TweetHandler) List(c *gin.Context) {
	tweets, err := h.tweetService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tweets"})
		return
	}

	items := make([]TweetListItem, 0, len(tweets))
	for _, t := range tweets {
		items = append(items, TweetListItem{
			Tweet:      t,
			CharCount:  domain.CharCount(t.GeneratedTweet),
			LengthBand: domain.BandFor(t.GeneratedTweet),
		})
	}

	c.JSON(http.StatusOK, ListResponse{Tweets: items, Total: len(items)})
}

// ToggleFavorite handles POST /api/v1/tweets/:id/favorite.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TweetHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tweet ID is required"})
		return
	}

	if err := h.tweetService.ToggleFavorite(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "failed to update tweet")
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/tweets/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TweetHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tweet ID is required"})
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "failed to delete tweet")
		return
	}

	c.Status(http.StatusNoContent)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// The not-found and not-owned cases share one response so tweet IDs owned by
// other users are indistinguishable from absent ones.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in"})
	case errors.Is(err, domain.ErrNotFoundOrUnauthorized):
		c.JSON(http.StatusNotFound, gin.H{"error": "tweet not found or unauthorized"})
	case errors.Is(err, domain.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
