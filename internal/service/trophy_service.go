package service

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jslate/trophy-share/internal/domain"
	"github.com/jslate/trophy-share/internal/repository"
)

const (
	maxRecipientNameLength   = 100
	maxAchievementTextLength = 500
)

type TrophyService struct {
	trophyRepo  repository.TrophyRepository
	sessionRepo repository.SessionRepository
}

func NewTrophyService(trophyRepo repository.TrophyRepository, sessionRepo repository.SessionRepository) *TrophyService {
	return &TrophyService{
		trophyRepo:  trophyRepo,
		sessionRepo: sessionRepo,
	}
}

type SubmitTrophyInput struct {
	RecipientName   string
	AchievementText string
	SubmitterName   string
}

// TrophyDetails carries a trophy plus forward-only navigation for the
// presentation flow.
type TrophyDetails struct {
	Trophy       *domain.TrophySubmission
	NextTrophyID *uuid.UUID
	IsLastTrophy bool
}

// SubmitTrophy validates and appends a nomination to the session. The first
// submission flips a created session to collecting. Display order assignment
// happens inside the repository transaction so concurrent submissions stay
// gapless.
func (s *TrophyService) SubmitTrophy(ctx context.Context, code string, input SubmitTrophyInput) (*domain.TrophySubmission, error) {
	recipient := strings.TrimSpace(input.RecipientName)
	if recipient == "" {
		return nil, &domain.ValidationError{Field: "recipientName", Message: "recipient name is required"}
	}
	if utf8.RuneCountInString(recipient) > maxRecipientNameLength {
		return nil, &domain.ValidationError{Field: "recipientName", Message: "recipient name cannot exceed 100 characters"}
	}

	achievement := strings.TrimSpace(input.AchievementText)
	if achievement == "" {
		return nil, &domain.ValidationError{Field: "achievementText", Message: "achievement text is required"}
	}
	if utf8.RuneCountInString(achievement) > maxAchievementTextLength {
		return nil, &domain.ValidationError{Field: "achievementText", Message: "achievement text cannot exceed 500 characters"}
	}

	var submitter *string
	if name := strings.TrimSpace(input.SubmitterName); name != "" {
		submitter = &name
	}

	session, err := s.sessionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		return nil, domain.ErrSessionExpired
	}

	if !session.AcceptingSubmissions() {
		return nil, domain.ErrSessionNotAccepting
	}

	trophy := &domain.TrophySubmission{
		ID:              uuid.New(),
		SessionID:       session.ID,
		RecipientName:   recipient,
		AchievementText: achievement,
		SubmitterName:   submitter,
		SubmittedAt:     time.Now().UTC(),
	}

	if err := s.trophyRepo.CreateInSession(ctx, trophy); err != nil {
		return nil, err
	}

	log.Printf("trophy submitted in session %s for %s", code, trophy.RecipientName)

	return trophy, nil
}

// ListTrophies returns the session's trophies ordered by display order.
// Expiration is checked here too, matching GetSessionWithTrophies.
func (s *TrophyService) ListTrophies(ctx context.Context, code string) ([]*domain.TrophySubmission, error) {
	session, err := s.sessionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		return nil, domain.ErrSessionExpired
	}

	return s.trophyRepo.ListBySession(ctx, session.ID)
}

// GetTrophyDetails returns one trophy together with the id of its immediate
// successor in display order. The lookup is scoped to the session: a trophy
// id that belongs to another session is not found.
func (s *TrophyService) GetTrophyDetails(ctx context.Context, code string, trophyID uuid.UUID) (*TrophyDetails, error) {
	session, err := s.sessionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	trophy, err := s.trophyRepo.GetByID(ctx, session.ID, trophyID)
	if err != nil {
		return nil, err
	}

	next, err := s.trophyRepo.NextInSession(ctx, session.ID, trophy.DisplayOrder)
	if err != nil {
		return nil, err
	}

	details := &TrophyDetails{
		Trophy:       trophy,
		IsLastTrophy: next == nil,
	}
	if next != nil {
		details.NextTrophyID = &next.ID
	}

	return details, nil
}
