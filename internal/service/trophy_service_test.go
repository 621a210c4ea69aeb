package service_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jslate/trophy-share/internal/domain"
	"github.com/jslate/trophy-share/internal/repository/postgres"
	"github.com/jslate/trophy-share/internal/service"
	"github.com/jslate/trophy-share/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrophyService(t *testing.T) (*testutil.TestDB, *service.TrophyService) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return testDB, service.NewTrophyService(repos.Trophy, repos.Session)
}

func TestTrophyService_SubmitTrophy_Validation(t *testing.T) {
	testDB, trophyService := newTrophyService(t)
	ctx := context.Background()

	session := testutil.NewSessionBuilder().Build(t, testDB.DB)

	tests := []struct {
		name      string
		input     service.SubmitTrophyInput
		wantField string
	}{
		{
			name:      "blank recipient name",
			input:     service.SubmitTrophyInput{RecipientName: "   ", AchievementText: "Shipped v1"},
			wantField: "recipientName",
		},
		{
			name:      "recipient name over 100 characters",
			input:     service.SubmitTrophyInput{RecipientName: strings.Repeat("a", 101), AchievementText: "Shipped v1"},
			wantField: "recipientName",
		},
		{
			name:      "blank achievement text",
			input:     service.SubmitTrophyInput{RecipientName: "Bob", AchievementText: "\t\n"},
			wantField: "achievementText",
		},
		{
			name:      "achievement text over 500 characters",
			input:     service.SubmitTrophyInput{RecipientName: "Bob", AchievementText: strings.Repeat("a", 501)},
			wantField: "achievementText",
		},
		{
			name:      "both invalid reports recipient first",
			input:     service.SubmitTrophyInput{RecipientName: "", AchievementText: ""},
			wantField: "recipientName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trophyService.SubmitTrophy(ctx, session.SessionCode, tt.input)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}

	t.Run("exactly 100 and 500 characters succeed", func(t *testing.T) {
		trophy, err := trophyService.SubmitTrophy(ctx, session.SessionCode, service.SubmitTrophyInput{
			RecipientName:   strings.Repeat("a", 100),
			AchievementText: strings.Repeat("b", 500),
		})
		require.NoError(t, err)
		assert.Len(t, trophy.RecipientName, 100)
		assert.Len(t, trophy.AchievementText, 500)
	})
}

func TestTrophyService_SubmitTrophy_Trimming(t *testing.T) {
	testDB, trophyService := newTrophyService(t)
	ctx := context.Background()

	session := testutil.NewSessionBuilder().Build(t, testDB.DB)

	t.Run("fields are trimmed", func(t *testing.T) {
		trophy, err := trophyService.SubmitTrophy(ctx, session.SessionCode, service.SubmitTrophyInput{
			RecipientName:   "  Bob  ",
			AchievementText: " Shipped v1 ",
			SubmitterName:   "  Dana ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bob", trophy.RecipientName)
		assert.Equal(t, "Shipped v1", trophy.AchievementText)
		require.NotNil(t, trophy.SubmitterName)
		assert.Equal(t, "Dana", *trophy.SubmitterName)
	})

	t.Run("blank submitter becomes absent", func(t *testing.T) {
		trophy, err := trophyService.SubmitTrophy(ctx, session.SessionCode, service.SubmitTrophyInput{
			RecipientName:   "Carol",
			AchievementText: "Fixed bug",
			SubmitterName:   "   ",
		})
		require.NoError(t, err)
		assert.Nil(t, trophy.SubmitterName)
	})
}

func TestTrophyService_SubmitTrophy_SessionState(t *testing.T) {
	testDB, trophyService := newTrophyService(t)
	ctx := context.Background()

	input := service.SubmitTrophyInput{RecipientName: "Bob", AchievementText: "Shipped v1"}

	t.Run("unknown session is not found", func(t *testing.T) {
		_, err := trophyService.SubmitTrophy(ctx, "NOPE0000", input)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("expired session is rejected", func(t *testing.T) {
		session := testutil.NewSessionBuilder().Expired().Build(t, testDB.DB)
		_, err := trophyService.SubmitTrophy(ctx, session.SessionCode, input)
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})

	t.Run("presenting session rejects submissions", func(t *testing.T) {
		session := testutil.NewSessionBuilder().
			WithStatus(domain.SessionStatusPresenting).
			Build(t, testDB.DB)
		_, err := trophyService.SubmitTrophy(ctx, session.SessionCode, input)
		assert.ErrorIs(t, err, domain.ErrSessionNotAccepting)
	})

	t.Run("closed session rejects submissions", func(t *testing.T) {
		session := testutil.NewSessionBuilder().
			WithStatus(domain.SessionStatusClosed).
			Build(t, testDB.DB)
		_, err := trophyService.SubmitTrophy(ctx, session.SessionCode, input)
		assert.ErrorIs(t, err, domain.ErrSessionNotAccepting)
	})

	t.Run("first submission opens collection", func(t *testing.T) {
		session := testutil.NewSessionBuilder().Build(t, testDB.DB)

		trophy, err := trophyService.SubmitTrophy(ctx, session.SessionCode, input)
		require.NoError(t, err)
		assert.Equal(t, 1, trophy.DisplayOrder)

		var got domain.Session
		require.NoError(t, testDB.DB.First(&got, "id = ?", session.ID).Error)
		assert.Equal(t, domain.SessionStatusCollecting, got.Status)
	})
}

func TestTrophyService_SubmitTrophy_DisplayOrderSequence(t *testing.T) {
	testDB, trophyService := newTrophyService(t)
	ctx := context.Background()

	session := testutil.NewSessionBuilder().Build(t, testDB.DB)

	for i := 1; i <= 5; i++ {
		trophy, err := trophyService.SubmitTrophy(ctx, session.SessionCode, service.SubmitTrophyInput{
			RecipientName:   "Recipient",
			AchievementText: "Achievement",
		})
		require.NoError(t, err)
		assert.Equal(t, i, trophy.DisplayOrder)
	}
}

func TestTrophyService_SubmitTrophy_Concurrent(t *testing.T) {
	testDB, trophyService := newTrophyService(t)
	ctx := context.Background()

	session := testutil.NewSessionBuilder().Build(t, testDB.DB)

	const submitters = 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := trophyService.SubmitTrophy(ctx, session.SessionCode, service.SubmitTrophyInput{
				RecipientName:   "Recipient",
				AchievementText: "Achievement",
			})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, submitters, successCount.Load())

	var orders []int
	require.NoError(t, testDB.DB.Model(&domain.TrophySubmission{}).
		Where("session_id = ?", session.ID).
		Order("display_order ASC").
		Pluck("display_order", &orders).Error)

	require.Len(t, orders, submitters)
	for i, order := range orders {
		assert.Equal(t, i+1, order, "display order sequence has a gap or repeat")
	}
}

func TestTrophyService_ListTrophies(t *testing.T) {
	testDB, trophyService := newTrophyService(t)
	ctx := context.Background()

	session := testutil.NewSessionBuilder().
		WithStatus(domain.SessionStatusCollecting).
		Build(t, testDB.DB)
	testutil.NewTrophyBuilder().WithSession(session).WithRecipient("Bob").WithDisplayOrder(1).Build(t, testDB.DB)
	testutil.NewTrophyBuilder().WithSession(session).WithRecipient("Carol").WithDisplayOrder(2).Build(t, testDB.DB)

	t.Run("ordered by display order", func(t *testing.T) {
		trophies, err := trophyService.ListTrophies(ctx, session.SessionCode)
		require.NoError(t, err)
		require.Len(t, trophies, 2)
		assert.Equal(t, "Bob", trophies[0].RecipientName)
		assert.Equal(t, "Carol", trophies[1].RecipientName)
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		_, err := trophyService.ListTrophies(ctx, "NOPE0000")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("expired session is rejected", func(t *testing.T) {
		expired := testutil.NewSessionBuilder().Expired().Build(t, testDB.DB)
		_, err := trophyService.ListTrophies(ctx, expired.SessionCode)
		assert.ErrorIs(t, err, domain.ErrSessionExpired)
	})
}

func TestTrophyService_GetTrophyDetails(t *testing.T) {
	testDB, trophyService := newTrophyService(t)
	ctx := context.Background()

	session := testutil.NewSessionBuilder().
		WithStatus(domain.SessionStatusPresenting).
		Build(t, testDB.DB)
	first := testutil.NewTrophyBuilder().WithSession(session).WithRecipient("Bob").WithDisplayOrder(1).Build(t, testDB.DB)
	second := testutil.NewTrophyBuilder().WithSession(session).WithRecipient("Carol").WithDisplayOrder(2).Build(t, testDB.DB)

	other := testutil.NewSessionBuilder().
		WithStatus(domain.SessionStatusCollecting).
		Build(t, testDB.DB)

	t.Run("middle trophy points at its successor", func(t *testing.T) {
		details, err := trophyService.GetTrophyDetails(ctx, session.SessionCode, first.ID)
		require.NoError(t, err)
		assert.False(t, details.IsLastTrophy)
		require.NotNil(t, details.NextTrophyID)
		assert.Equal(t, second.ID, *details.NextTrophyID)
	})

	t.Run("last trophy has no successor", func(t *testing.T) {
		details, err := trophyService.GetTrophyDetails(ctx, session.SessionCode, second.ID)
		require.NoError(t, err)
		assert.True(t, details.IsLastTrophy)
		assert.Nil(t, details.NextTrophyID)
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		_, err := trophyService.GetTrophyDetails(ctx, "NOPE0000", first.ID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("trophy from another session does not leak", func(t *testing.T) {
		_, err := trophyService.GetTrophyDetails(ctx, other.SessionCode, first.ID)
		assert.ErrorIs(t, err, domain.ErrTrophyNotFound)
	})
}
