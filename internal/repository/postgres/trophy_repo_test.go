package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jslate/trophy-share/internal/domain"
	"github.com/jslate/trophy-share/internal/repository/postgres"
	"github.com/jslate/trophy-share/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrophy(sessionID uuid.UUID) *domain.TrophySubmission {
	return &domain.TrophySubmission{
		ID:              uuid.New(),
		SessionID:       sessionID,
		RecipientName:   "Bob",
		AchievementText: "Shipped v1",
		SubmittedAt:     time.Now().UTC(),
	}
}

func TestTrophyRepository_CreateInSession(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	t.Run("assigns sequential display orders and opens collection", func(t *testing.T) {
		session := testutil.NewSessionBuilder().Build(t, testDB.DB)

		first := newTrophy(session.ID)
		require.NoError(t, repos.Trophy.CreateInSession(ctx, first))
		assert.Equal(t, 1, first.DisplayOrder)

		second := newTrophy(session.ID)
		require.NoError(t, repos.Trophy.CreateInSession(ctx, second))
		assert.Equal(t, 2, second.DisplayOrder)

		var got domain.Session
		require.NoError(t, testDB.DB.First(&got, "id = ?", session.ID).Error)
		assert.Equal(t, domain.SessionStatusCollecting, got.Status)
	})

	t.Run("rejects a session that stopped accepting", func(t *testing.T) {
		session := testutil.NewSessionBuilder().
			WithStatus(domain.SessionStatusClosed).
			Build(t, testDB.DB)

		err := repos.Trophy.CreateInSession(ctx, newTrophy(session.ID))
		assert.ErrorIs(t, err, domain.ErrSessionNotAccepting)
	})

	t.Run("missing session is not found", func(t *testing.T) {
		err := repos.Trophy.CreateInSession(ctx, newTrophy(uuid.New()))
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestTrophyRepository_NextInSession(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	session := testutil.NewSessionBuilder().
		WithStatus(domain.SessionStatusCollecting).
		Build(t, testDB.DB)
	testutil.NewTrophyBuilder().WithSession(session).WithDisplayOrder(1).Build(t, testDB.DB)
	third := testutil.NewTrophyBuilder().WithSession(session).WithDisplayOrder(3).Build(t, testDB.DB)

	t.Run("skips to the first strictly higher order", func(t *testing.T) {
		next, err := repos.Trophy.NextInSession(ctx, session.ID, 1)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, third.ID, next.ID)
	})

	t.Run("nil when no successor exists", func(t *testing.T) {
		next, err := repos.Trophy.NextInSession(ctx, session.ID, 3)
		require.NoError(t, err)
		assert.Nil(t, next)
	})
}

func TestSessionDelete_CascadesTrophies(t *testing.T) {
	testDB := testutil.NewTestDB(t)

	session := testutil.NewSessionBuilder().
		WithStatus(domain.SessionStatusCollecting).
		Build(t, testDB.DB)
	testutil.NewTrophyBuilder().WithSession(session).WithDisplayOrder(1).Build(t, testDB.DB)
	testutil.NewTrophyBuilder().WithSession(session).WithDisplayOrder(2).Build(t, testDB.DB)

	require.NoError(t, testDB.DB.Delete(&domain.Session{}, "id = ?", session.ID).Error)

	var count int64
	require.NoError(t, testDB.DB.Model(&domain.TrophySubmission{}).
		Where("session_id = ?", session.ID).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
