package auth

import (
	"context"

	"github.com/arlo/tweetsmith/internal/domain"
)

// Identity resolves the calling user for a request. It is injected into
// services instead of reading ambient session state directly, so tests can
// substitute a fixed identity or none.
type Identity interface {
	// CurrentUser returns the caller's user ID, or
	// domain.ErrUnauthenticated when no identity is resolvable.
	CurrentUser(ctx context.Context) (string, error)
}

// userIDKey is a private context key for the authenticated user ID.
type userIDKey struct{}

// WithUserID returns a context carrying the authenticated user ID.
// Parameters:
//   - ctx: base context.
//   - userID: resolved user ID.
// Returns:
//   - context.Context: context with the user ID attached.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext extracts the authenticated user ID from the context.
// Parameters:
//   - ctx: context to inspect.
// Returns:
//   - string: user ID, empty if absent.
//   - bool: true when a user ID was present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// ContextIdentity resolves the caller from the request context populated by
// the auth middleware. The check runs per request; nothing is cached.
type ContextIdentity struct{}

// NewContextIdentity creates the production Identity implementation.
// Parameters: none.
// Returns:
//   - *ContextIdentity: identity resolver backed by request context.
func NewContextIdentity() *ContextIdentity {
	return &ContextIdentity{}
}

// CurrentUser returns the user ID stored by the middleware.
// Parameters:
//   - ctx: request context.
// Returns:
//   - string: user ID when authenticated.
//   - error: domain.ErrUnauthenticated when no user is attached.
func (i *ContextIdentity) CurrentUser(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}
