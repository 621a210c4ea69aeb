package service

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jslate/trophy-share/internal/config"
	"github.com/jslate/trophy-share/internal/domain"
	"github.com/jslate/trophy-share/internal/repository"
)

const sessionCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type SessionService struct {
	sessionRepo repository.SessionRepository
	cfg         *config.Config
}

func NewSessionService(sessionRepo repository.SessionRepository, cfg *config.Config) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// CreateSession opens a new session in the created state. ExpiresAt is fixed
// here and never extended. When organizerName is non-blank an organizer user
// is persisted alongside the session.
func (s *SessionService) CreateSession(ctx context.Context, organizerName string) (*domain.Session, error) {
	now := time.Now().UTC()

	session := &domain.Session{
		ID:          uuid.New(),
		SessionCode: generateSessionCode(s.cfg.SessionCodeLength),
		OrganizerID: uuid.New(),
		Status:      domain.SessionStatusCreated,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.cfg.SessionTTL),
	}

	var organizer *domain.User
	if name := strings.TrimSpace(organizerName); name != "" {
		organizer = &domain.User{
			ID:        session.OrganizerID,
			Name:      name,
			SessionID: &session.ID,
			CreatedAt: now,
		}
	}

	if err := s.sessionRepo.Create(ctx, session, organizer); err != nil {
		return nil, err
	}

	log.Printf("session created with code %s", session.SessionCode)

	return session, nil
}

// GetSessionWithTrophies returns the session and its trophies ordered by
// display order. An expired session is reported as expired, not as missing.
func (s *SessionService) GetSessionWithTrophies(ctx context.Context, code string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByCodeWithTrophies(ctx, code)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		return nil, domain.ErrSessionExpired
	}

	return session, nil
}

// StartPresentation moves the session into presenting. Any non-expired
// session holding at least one trophy qualifies; re-presenting an already
// presenting session just re-sets the same status.
func (s *SessionService) StartPresentation(ctx context.Context, code string) (*domain.Session, int64, error) {
	session, err := s.sessionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}

	if session.Expired(time.Now().UTC()) {
		return nil, 0, domain.ErrSessionExpired
	}

	count, err := s.sessionRepo.CountTrophies(ctx, session.ID)
	if err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return nil, 0, domain.ErrNoTrophies
	}

	session.Status = domain.SessionStatusPresenting
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, 0, err
	}

	log.Printf("session %s transitioned to presentation mode", code)

	return session, count, nil
}

// CloseSession closes the session unconditionally, whatever its current
// status. Closing an already closed session refreshes ClosedAt.
func (s *SessionService) CloseSession(ctx context.Context, code string) (*domain.Session, int64, error) {
	session, err := s.sessionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now().UTC()
	session.Status = domain.SessionStatusClosed
	session.ClosedAt = &now
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, 0, err
	}

	count, err := s.sessionRepo.CountTrophies(ctx, session.ID)
	if err != nil {
		return nil, 0, err
	}

	log.Printf("session %s closed", code)

	return session, count, nil
}

// generateSessionCode draws length characters uniformly from [A-Z0-9].
// Collisions are not retried here; the unique index on session_code is the
// backstop.
func generateSessionCode(length int) string {
	code := make([]byte, length)
	max := big.NewInt(int64(len(sessionCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		code[i] = sessionCodeAlphabet[n.Int64()]
	}
	return string(code)
}
