package repository

import (
	"context"
	"testing"
	"time"

	"community-pulse/internal/model"
	"community-pulse/internal/repository"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// insertEvent 插入可自訂分類與開始時間的活動
func insertEvent(t *testing.T, organizerID int, category model.Category, start time.Time, approved bool) *model.Event {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewEventRepository(testDB)
	event, err := repo.Create(ctx, &model.Event{
		EventID:           uuid.New(),
		Title:             "Saturday " + string(category),
		Description:       "Neighborhood gathering",
		Location:          "Riverside Park",
		Category:          category,
		StartDate:         start,
		EndDate:           start.Add(3 * time.Hour),
		RegistrationStart: start.Add(-72 * time.Hour),
		RegistrationEnd:   start.Add(-1 * time.Hour),
		OrganizerID:       organizerID,
		IsApproved:        approved,
	})
	if err != nil {
		t.Fatalf("Failed to insert event: %v", err)
	}
	return event
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")

		event := createTestEvent(t, organizer.ID, true)

		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, event.EventID, found.EventID)
		assert.Equal(t, "Night Market Festival", found.Title)
		assert.Equal(t, model.CategoryFestival, found.Category)
		assert.Equal(t, organizer.ID, found.OrganizerID)
		assert.True(t, found.IsApproved)
	})
}

func TestEventRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		_, err := repo.FindByID(ctx, 999)

		assert.Equal(t, apperrors.ErrEventNotFound, err)
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success - approved only, ordered by start date", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		now := time.Now().UTC()

		later := insertEvent(t, organizer.ID, model.CategoryFestival, now.Add(96*time.Hour), true)
		sooner := insertEvent(t, organizer.ID, model.CategoryGarageSale, now.Add(24*time.Hour), true)
		insertEvent(t, organizer.ID, model.CategoryVolunteer, now.Add(48*time.Hour), false)

		events, err := repo.List(ctx, model.ListEventsFilter{ApprovedOnly: true})

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, sooner.ID, events[0].ID)
		assert.Equal(t, later.ID, events[1].ID)
	})

	t.Run("Success - category filter", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		now := time.Now().UTC()

		insertEvent(t, organizer.ID, model.CategoryFestival, now.Add(24*time.Hour), true)
		match := insertEvent(t, organizer.ID, model.CategorySportsMatch, now.Add(48*time.Hour), true)

		category := model.CategorySportsMatch
		events, err := repo.List(ctx, model.ListEventsFilter{ApprovedOnly: true, Category: &category})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, match.ID, events[0].ID)
	})

	t.Run("Success - upcoming excludes past events", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		now := time.Now().UTC()

		insertEvent(t, organizer.ID, model.CategoryFestival, now.Add(-48*time.Hour), true)
		upcoming := insertEvent(t, organizer.ID, model.CategoryFestival, now.Add(48*time.Hour), true)

		events, err := repo.List(ctx, model.ListEventsFilter{ApprovedOnly: true, Upcoming: true})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, upcoming.ID, events[0].ID)
	})
}

func TestEventRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success - matches title case-insensitively, approved only", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		now := time.Now().UTC()

		insertEvent(t, organizer.ID, model.CategoryGarageSale, now.Add(24*time.Hour), true)
		festival := createTestEvent(t, organizer.ID, true)
		// 未審核的活動不應出現在搜尋結果
		createTestEvent(t, organizer.ID, false)

		events, err := repo.Search(ctx, "night market")

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, festival.ID, events[0].ID)
	})

	t.Run("Success - matches location", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		now := time.Now().UTC()

		park := insertEvent(t, organizer.ID, model.CategoryVolunteer, now.Add(24*time.Hour), true)

		events, err := repo.Search(ctx, "riverside")

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, park.ID, events[0].ID)
	})
}

func TestEventRepository_ListPending(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")

		createTestEvent(t, organizer.ID, true)
		pending := createTestEvent(t, organizer.ID, false)

		events, err := repo.ListPending(ctx)

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, pending.ID, events[0].ID)
	})
}

func TestEventRepository_ListByOrganizerID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		other := createTestUser(t, "other")

		createTestEvent(t, organizer.ID, true)
		createTestEvent(t, organizer.ID, false)
		createTestEvent(t, other.ID, true)

		events, err := repo.ListByOrganizerID(ctx, organizer.ID)

		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success - updates only provided fields", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		event := createTestEvent(t, organizer.ID, true)

		title := "Winter Market Festival"
		location := "Harbor Plaza"
		updated, err := repo.Update(ctx, event.ID, model.UpdateEventParams{
			Title:    &title,
			Location: &location,
		})

		require.NoError(t, err)
		assert.Equal(t, "Winter Market Festival", updated.Title)
		assert.Equal(t, "Harbor Plaza", updated.Location)
		assert.Equal(t, event.Description, updated.Description)
		assert.WithinDuration(t, event.StartDate, updated.StartDate, time.Second)
	})

	t.Run("Success - revokes approval", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		event := createTestEvent(t, organizer.ID, true)

		title := "Retitled"
		approved := false
		updated, err := repo.Update(ctx, event.ID, model.UpdateEventParams{
			Title:      &title,
			IsApproved: &approved,
		})

		require.NoError(t, err)
		assert.False(t, updated.IsApproved)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		title := "Ghost"
		_, err := repo.Update(ctx, 999, model.UpdateEventParams{Title: &title})

		assert.Equal(t, apperrors.ErrEventNotFound, err)
	})
}

func TestEventRepository_SetApproval(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		event := createTestEvent(t, organizer.ID, false)

		require.NoError(t, repo.SetApproval(ctx, event.ID, true))

		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.True(t, found.IsApproved)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		assert.Equal(t, apperrors.ErrEventNotFound, repo.SetApproval(ctx, 999, true))
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(testDB)

	t.Run("Success - cascades to registrations", func(t *testing.T) {
		setupTestWithTruncate(t)
		organizer := createTestUser(t, "organizer")
		attendee := createTestUser(t, "attendee")
		event := createTestEvent(t, organizer.ID, true)
		createTestRegistration(t, event.ID, attendee.ID, model.RegistrationStatusRegistered, []string{"Pat"})

		require.NoError(t, repo.Delete(ctx, event.ID))

		_, err := repo.FindByID(ctx, event.ID)
		assert.Equal(t, apperrors.ErrEventNotFound, err)

		regRepo := repository.NewRegistrationRepository(testDB)
		_, err = regRepo.FindByEventAndUser(ctx, event.ID, attendee.ID)
		assert.Equal(t, apperrors.ErrRegistrationNotFound, err)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		assert.Equal(t, apperrors.ErrEventNotFound, repo.Delete(ctx, 999))
	})
}
