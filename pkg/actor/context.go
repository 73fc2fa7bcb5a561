package actor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const actorIDKey contextKey = "actor_id"

// ErrActorNotFound is returned when no caller identity exists in the request
// context. Handlers should return 401 when this error occurs.
var ErrActorNotFound = errors.New("actor identity not found in context")

// FromCtx extracts the caller identity from the request context.
// Returns uuid.Nil and ErrActorNotFound if no identity is set.
func FromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(actorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrActorNotFound
	}
	return id, nil
}

// WithActorID returns a new context with the given caller identity attached.
// Used by the Require middleware after parsing the identity header.
func WithActorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, actorIDKey, id)
}
