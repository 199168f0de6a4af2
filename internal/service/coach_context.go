package service

import (
	"context"

	"github.com/google/uuid"
)

type coachKey struct{}

// WithCoach marks ctx as acting on behalf of coachID. Plan writes made with
// the returned context are attributed to that coach in their events.
func WithCoach(ctx context.Context, coachID uuid.UUID) context.Context {
	return context.WithValue(ctx, coachKey{}, coachID)
}

func CoachFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(coachKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
