package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrophySubmission is one nomination inside a session. DisplayOrder values
// within a session form a gapless ascending sequence starting at 1, assigned
// at insertion time; the composite unique index backs that invariant.
type TrophySubmission struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID       uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:uix_trophies_session_order,priority:1"`
	RecipientName   string    `json:"recipientName" gorm:"size:100;not null"`
	AchievementText string    `json:"achievementText" gorm:"size:500;not null"`
	SubmitterName   *string   `json:"submitterName,omitempty"`
	SubmittedAt     time.Time `json:"submittedAt"`
	DisplayOrder    int       `json:"displayOrder" gorm:"not null;uniqueIndex:uix_trophies_session_order,priority:2"`

	// Relations
	Session *Session `json:"-" gorm:"foreignKey:SessionID"`
}
