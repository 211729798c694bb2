package repository

import (
	"context"
	"testing"

	"community-pulse/internal/model"
	"community-pulse/internal/repository"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNotification(t *testing.T, eventID, userID int, title string) *model.Notification {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewNotificationRepository(testDB)
	n, err := repo.Create(ctx, &model.Notification{
		EventID: eventID,
		UserID:  userID,
		Title:   title,
		Message: "Details inside",
		Type:    model.NotificationTypeUpdate,
	})
	if err != nil {
		t.Fatalf("Failed to create test notification: %v", err)
	}
	return n
}

func TestNotificationRepository_Create(t *testing.T) {
	t.Run("Success - starts unread", func(t *testing.T) {
		setupTestWithTruncate(t)
		user := createTestUser(t, "alice")
		event := createTestEvent(t, user.ID, true)

		n := createTestNotification(t, event.ID, user.ID, "Event updated")

		assert.NotZero(t, n.ID)
		assert.Equal(t, model.NotificationTypeUpdate, n.Type)
		assert.False(t, n.IsRead)
		assert.False(t, n.CreatedAt.IsZero())
	})
}

func TestNotificationRepository_ListUnreadByUserID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewNotificationRepository(testDB)

	t.Run("Success - excludes read and other users", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "alice")
		bob := createTestUser(t, "bob")
		event := createTestEvent(t, alice.ID, true)

		kept := createTestNotification(t, event.ID, alice.ID, "Event updated")
		read := createTestNotification(t, event.ID, alice.ID, "Old news")
		createTestNotification(t, event.ID, bob.ID, "For Bob")

		require.NoError(t, repo.MarkRead(ctx, read.ID, alice.ID))

		notifications, err := repo.ListUnreadByUserID(ctx, alice.ID)

		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, kept.ID, notifications[0].ID)
	})

	t.Run("Success - empty slice when nothing unread", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "alice")

		notifications, err := repo.ListUnreadByUserID(ctx, alice.ID)

		require.NoError(t, err)
		assert.NotNil(t, notifications)
		assert.Empty(t, notifications)
	})
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewNotificationRepository(testDB)

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "alice")
		event := createTestEvent(t, alice.ID, true)
		n := createTestNotification(t, event.ID, alice.ID, "Event updated")

		require.NoError(t, repo.MarkRead(ctx, n.ID, alice.ID))

		notifications, err := repo.ListUnreadByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})

	t.Run("Failed - NotFound when id belongs to another user", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "alice")
		bob := createTestUser(t, "bob")
		event := createTestEvent(t, alice.ID, true)
		n := createTestNotification(t, event.ID, alice.ID, "Event updated")

		err := repo.MarkRead(ctx, n.ID, bob.ID)

		assert.Equal(t, apperrors.ErrNotificationNotFound, err)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		setupTestWithTruncate(t)
		alice := createTestUser(t, "alice")

		err := repo.MarkRead(ctx, 999, alice.ID)

		assert.Equal(t, apperrors.ErrNotificationNotFound, err)
	})
}
