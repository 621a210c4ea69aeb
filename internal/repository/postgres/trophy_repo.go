package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jslate/trophy-share/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type trophyRepository struct {
	db *gorm.DB
}

func NewTrophyRepository(db *gorm.DB) *trophyRepository {
	return &trophyRepository{db: db}
}

// CreateInSession assigns the next display order and inserts the trophy in a
// single transaction. The session row is locked for the duration so two
// concurrent submissions cannot observe the same max; the status re-check
// inside the lock keeps a racing close/present from being lost.
func (r *trophyRepository) CreateInSession(ctx context.Context, trophy *domain.TrophySubmission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session domain.Session
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", trophy.SessionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSessionNotFound
			}
			return err
		}

		if !session.AcceptingSubmissions() {
			return domain.ErrSessionNotAccepting
		}

		var maxOrder int
		err = tx.Model(&domain.TrophySubmission{}).
			Where("session_id = ?", trophy.SessionID).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}
		trophy.DisplayOrder = maxOrder + 1

		// First submission opens collection
		if session.Status == domain.SessionStatusCreated {
			err = tx.Model(&domain.Session{}).
				Where("id = ?", session.ID).
				Update("status", domain.SessionStatusCollecting).Error
			if err != nil {
				return err
			}
		}

		return tx.Create(trophy).Error
	})
}

func (r *trophyRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.TrophySubmission, error) {
	var trophies []*domain.TrophySubmission
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("display_order ASC").
		Find(&trophies).Error
	if err != nil {
		return nil, err
	}
	return trophies, nil
}

func (r *trophyRepository) GetByID(ctx context.Context, sessionID, trophyID uuid.UUID) (*domain.TrophySubmission, error) {
	var trophy domain.TrophySubmission
	err := r.db.WithContext(ctx).
		First(&trophy, "id = ? AND session_id = ?", trophyID, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTrophyNotFound
		}
		return nil, err
	}
	return &trophy, nil
}

func (r *trophyRepository) NextInSession(ctx context.Context, sessionID uuid.UUID, afterOrder int) (*domain.TrophySubmission, error) {
	var trophy domain.TrophySubmission
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND display_order > ?", sessionID, afterOrder).
		Order("display_order ASC").
		First(&trophy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trophy, nil
}
