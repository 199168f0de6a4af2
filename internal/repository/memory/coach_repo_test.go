package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/dom/touchline-tactician/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoachRepository(t *testing.T) {
	repo := memory.NewCoachRepository()
	ctx := context.Background()

	coach := &domain.Coach{DisplayName: "klopp", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, coach))
	assert.NotEqual(t, uuid.Nil, coach.ID)

	err := repo.Create(ctx, &domain.Coach{DisplayName: "klopp"})
	assert.ErrorIs(t, err, repository.ErrDuplicateCoach)

	got, err := repo.GetByDisplayName(ctx, "klopp")
	require.NoError(t, err)
	assert.Equal(t, coach.ID, got.ID)

	got.DisplayName = "jurgen"
	require.NoError(t, repo.Update(ctx, got))

	_, err = repo.GetByDisplayName(ctx, "klopp")
	assert.ErrorIs(t, err, repository.ErrCoachNotFound)

	renamed, err := repo.GetByID(ctx, coach.ID)
	require.NoError(t, err)
	assert.Equal(t, "jurgen", renamed.DisplayName)
}

func TestSessionRepository(t *testing.T) {
	repo := memory.NewSessionRepository()
	ctx := context.Background()
	coachID := uuid.New()
	now := time.Now()

	older := &domain.CoachSession{CoachID: coachID, CreatedAt: now.Add(-time.Minute)}
	newer := &domain.CoachSession{CoachID: coachID, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByCoachID(ctx, coachID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	require.NoError(t, repo.DeleteByCoachID(ctx, coachID))
	_, err = repo.GetByCoachID(ctx, coachID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
