package memory

import (
	"context"
	"sync"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/google/uuid"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.CoachSession
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[uuid.UUID]domain.CoachSession)}
}

func (r *SessionRepository) Create(_ context.Context, session *domain.CoachSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = *session
	return nil
}

// GetByCoachID returns the most recently created session for the coach.
func (r *SessionRepository) GetByCoachID(_ context.Context, coachID uuid.UUID) (*domain.CoachSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.CoachSession
	for _, s := range r.sessions {
		if s.CoachID != coachID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			s := s
			latest = &s
		}
	}
	if latest == nil {
		return nil, repository.ErrSessionNotFound
	}
	return latest, nil
}

func (r *SessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *SessionRepository) DeleteByCoachID(_ context.Context, coachID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		if s.CoachID == coachID {
			delete(r.sessions, id)
		}
	}
	return nil
}
