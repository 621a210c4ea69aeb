package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusCollecting SessionStatus = "collecting"
	SessionStatusPresenting SessionStatus = "presenting"
	SessionStatusClosed     SessionStatus = "closed"
)

// Session is a bounded-lifetime container for one round of trophy
// collection and presentation, addressed by a short public code.
type Session struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionCode string        `json:"sessionCode" gorm:"uniqueIndex;not null"`
	OrganizerID uuid.UUID     `json:"organizerId" gorm:"type:uuid;not null"`
	Status      SessionStatus `json:"status" gorm:"not null;default:'created'"`
	CreatedAt   time.Time     `json:"createdAt"`
	ExpiresAt   time.Time     `json:"expiresAt" gorm:"not null"`
	ClosedAt    *time.Time    `json:"closedAt"`

	// Relations
	Trophies []TrophySubmission `json:"trophies,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// Expired reports whether the session is past its deadline. ExpiresAt is
// fixed at creation; expiration is always computed at read time, never
// stored as a status.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// AcceptingSubmissions reports whether new trophies may be added.
func (s *Session) AcceptingSubmissions() bool {
	return s.Status == SessionStatusCreated || s.Status == SessionStatusCollecting
}

// ShareableURL is the client-side path participants use to open the session.
func (s *Session) ShareableURL() string {
	return "/share/" + s.SessionCode
}
