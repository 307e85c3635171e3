package domain

import "errors"

// Error taxonomy shared across services and handlers. Callers compare with
// errors.Is; services wrap these with additional context via fmt.Errorf.
var (
	// ErrUnauthenticated means no user identity could be resolved for the
	// request. Raised before any side effect takes place.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrGenerationFailed means the upstream completion call errored or
	// returned no usable text. Nothing is persisted in that case.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrNotFoundOrUnauthorized is returned uniformly when a target tweet is
	// absent or owned by another user, so existence of other users' records
	// is never leaked.
	ErrNotFoundOrUnauthorized = errors.New("tweet not found or unauthorized")
)
