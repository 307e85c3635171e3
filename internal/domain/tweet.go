package domain

import (
	"time"
	"unicode/utf8"
)

// TweetType tags how a tweet record was produced.
// Values are TweetTypeGenerated and TweetTypeImproved; the tag is set at
// creation and never changes afterwards.
type TweetType string

const (
	TweetTypeGenerated TweetType = "generated"
	TweetTypeImproved  TweetType = "improved"
)

// LengthBand classifies tweet text length for the UI character counter.
type LengthBand string

const (
	LengthBandNormal    LengthBand = "normal"
	LengthBandWarning   LengthBand = "warning"
	LengthBandOverLimit LengthBand = "over_limit"
)

// Character counter thresholds. The 280 limit is advisory: the model is asked
// to stay under it, but over-length output is stored and returned unchanged.
const (
	LengthWarningThreshold = 250
	LengthLimit            = 280
)

// Tweet represents a generated or improved tweet owned by a single user.
// Exactly one of Prompt / OriginalTweet is populated, matching Type.
// Records are immutable after creation except for IsFavorite.
type Tweet struct {
	ID             string    `gorm:"type:text;primaryKey" json:"id"`
	UserID         string    `gorm:"type:text;not null;index:idx_tweets_user_created,priority:1" json:"user_id"`
	OriginalTweet  *string   `gorm:"type:text" json:"original_tweet,omitempty"`
	GeneratedTweet string    `gorm:"type:text;not null" json:"generated_tweet"`
	Prompt         *string   `gorm:"type:text" json:"prompt,omitempty"`
	Type           TweetType `gorm:"type:text;not null" json:"type"`
	IsFavorite     bool      `gorm:"default:false" json:"is_favorite"`
	CreatedAt      time.Time `gorm:"index:idx_tweets_user_created,priority:2" json:"created_at"`
}

// TableName returns the database table name for Tweet.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Tweet) TableName() string {
	return "tweets"
}

// CharCount returns the number of characters (runes) in text.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}

// BandFor classifies text length for the character counter.
// Parameters:
//   - text: tweet text to classify.
// Returns:
//   - LengthBand: normal (<=250), warning (251-280), or over_limit (>280).
func BandFor(text string) LengthBand {
	n := CharCount(text)
	switch {
	case n <= LengthWarningThreshold:
		return LengthBandNormal
	case n <= LengthLimit:
		return LengthBandWarning
	default:
		return LengthBandOverLimit
	}
}
