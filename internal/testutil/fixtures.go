package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jslate/trophy-share/internal/domain"
	"gorm.io/gorm"
)

// SessionBuilder creates test sessions with a builder pattern
type SessionBuilder struct {
	code      string
	status    domain.SessionStatus
	createdAt time.Time
	expiresAt time.Time
	closedAt  *time.Time
}

// NewSessionBuilder creates a new SessionBuilder with default values
func NewSessionBuilder() *SessionBuilder {
	now := time.Now().UTC()
	return &SessionBuilder{
		code:      generateTestCode(),
		status:    domain.SessionStatusCreated,
		createdAt: now,
		expiresAt: now.Add(24 * time.Hour),
	}
}

// WithCode sets the session code
func (b *SessionBuilder) WithCode(code string) *SessionBuilder {
	b.code = code
	return b
}

// WithStatus sets the session status
func (b *SessionBuilder) WithStatus(status domain.SessionStatus) *SessionBuilder {
	b.status = status
	return b
}

// WithExpiresAt sets the expiration timestamp
func (b *SessionBuilder) WithExpiresAt(expiresAt time.Time) *SessionBuilder {
	b.expiresAt = expiresAt
	return b
}

// Expired marks the session as already past its deadline
func (b *SessionBuilder) Expired() *SessionBuilder {
	b.createdAt = time.Now().UTC().Add(-25 * time.Hour)
	b.expiresAt = time.Now().UTC().Add(-1 * time.Hour)
	return b
}

// Build creates the session in the database
func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Session {
	t.Helper()

	session := &domain.Session{
		ID:          uuid.New(),
		SessionCode: b.code,
		OrganizerID: uuid.New(),
		Status:      b.status,
		CreatedAt:   b.createdAt,
		ExpiresAt:   b.expiresAt,
		ClosedAt:    b.closedAt,
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// TrophyBuilder creates test trophies with a builder pattern
type TrophyBuilder struct {
	session         *domain.Session
	recipientName   string
	achievementText string
	submitterName   *string
	displayOrder    int
}

// NewTrophyBuilder creates a new TrophyBuilder with default values
func NewTrophyBuilder() *TrophyBuilder {
	return &TrophyBuilder{
		recipientName:   fmt.Sprintf("Recipient %s", uuid.New().String()[:8]),
		achievementText: "Did something worth celebrating",
		displayOrder:    1,
	}
}

// WithSession sets the owning session
func (b *TrophyBuilder) WithSession(session *domain.Session) *TrophyBuilder {
	b.session = session
	return b
}

// WithRecipient sets the recipient name
func (b *TrophyBuilder) WithRecipient(name string) *TrophyBuilder {
	b.recipientName = name
	return b
}

// WithAchievement sets the achievement text
func (b *TrophyBuilder) WithAchievement(text string) *TrophyBuilder {
	b.achievementText = text
	return b
}

// WithSubmitter sets the submitter name
func (b *TrophyBuilder) WithSubmitter(name string) *TrophyBuilder {
	b.submitterName = &name
	return b
}

// WithDisplayOrder sets the display order
func (b *TrophyBuilder) WithDisplayOrder(order int) *TrophyBuilder {
	b.displayOrder = order
	return b
}

// Build creates the trophy in the database
func (b *TrophyBuilder) Build(t *testing.T, db *gorm.DB) *domain.TrophySubmission {
	t.Helper()

	if b.session == nil {
		b.session = NewSessionBuilder().WithStatus(domain.SessionStatusCollecting).Build(t, db)
	}

	trophy := &domain.TrophySubmission{
		ID:              uuid.New(),
		SessionID:       b.session.ID,
		RecipientName:   b.recipientName,
		AchievementText: b.achievementText,
		SubmitterName:   b.submitterName,
		SubmittedAt:     time.Now().UTC(),
		DisplayOrder:    b.displayOrder,
	}

	if err := db.Create(trophy).Error; err != nil {
		t.Fatalf("failed to create trophy: %v", err)
	}

	return trophy
}

func generateTestCode() string {
	// [A-Z0-9], 8 chars, same shape the service generates
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	raw := uuid.New()
	code := make([]byte, 8)
	for i := range code {
		code[i] = alphabet[int(raw[i])%len(alphabet)]
	}
	return string(code)
}

// DoJSONRequest sends a JSON request and returns the response
func DoJSONRequest(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}
