package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jslate/trophy-share/internal/domain"
)

type SessionRepository interface {
	// Create persists the session and, when organizer is non-nil, the
	// organizer user in the same transaction.
	Create(ctx context.Context, session *domain.Session, organizer *domain.User) error
	GetByCode(ctx context.Context, code string) (*domain.Session, error)
	// GetByCodeWithTrophies preloads the session's trophies ordered by
	// display order ascending.
	GetByCodeWithTrophies(ctx context.Context, code string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	CountTrophies(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

type TrophyRepository interface {
	// CreateInSession inserts the trophy with the next display order for its
	// session and flips a created session to collecting, all within one
	// transaction holding a row lock on the session.
	CreateInSession(ctx context.Context, trophy *domain.TrophySubmission) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.TrophySubmission, error)
	// GetByID scopes the lookup to the given session; a trophy id from
	// another session is a not-found, never a leak.
	GetByID(ctx context.Context, sessionID, trophyID uuid.UUID) (*domain.TrophySubmission, error)
	// NextInSession returns the trophy with the lowest display order strictly
	// greater than afterOrder, or nil when none exists.
	NextInSession(ctx context.Context, sessionID uuid.UUID, afterOrder int) (*domain.TrophySubmission, error)
}

type Repositories struct {
	Session SessionRepository
	Trophy  TrophyRepository
}
