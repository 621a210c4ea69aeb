package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a lightweight organizer label. It only exists when a session is
// created with an organizer name; nothing outside session creation refers
// to it.
type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string     `json:"name"`
	SessionID *uuid.UUID `json:"sessionId" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"createdAt"`
}
