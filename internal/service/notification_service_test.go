package service

import (
	"context"
	"testing"

	"finwise/internal/dto"
	"finwise/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyPersistsNotification(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, testLogger())

	userID := uuid.New()
	err := svc.Notify(context.Background(), userID, "You exceeded your Food budget!", models.NotificationSpendingAlert)
	require.NoError(t, err)

	list, err := svc.ListNotifications(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "You exceeded your Food budget!", list[0].Message)
	assert.Equal(t, models.NotificationSpendingAlert, list[0].Type)
	assert.False(t, list[0].IsRead)
}

func TestNotifyRequiresMessageAndType(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationStore{}, testLogger())

	assert.ErrorIs(t, svc.Notify(context.Background(), uuid.New(), "", models.NotificationSpendingAlert), ErrInvalidInput)
	assert.ErrorIs(t, svc.Notify(context.Background(), uuid.New(), "hello", ""), ErrInvalidInput)
}

func TestMarkAsRead(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, testLogger())

	userID := uuid.New()
	created, err := svc.CreateNotification(context.Background(), userID, &dto.CreateNotificationRequest{
		Message: "hello",
		Type:    models.NotificationGoalReminder,
	})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	assert.ErrorIs(t, svc.MarkAsRead(context.Background(), uuid.New(), id), ErrNotificationNotFound)
	require.NoError(t, svc.MarkAsRead(context.Background(), userID, id))

	list, err := svc.ListNotifications(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}

func TestDeleteAllNotifications(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, testLogger())

	userID := uuid.New()
	other := uuid.New()
	require.NoError(t, svc.Notify(context.Background(), userID, "one", models.NotificationSpendingAlert))
	require.NoError(t, svc.Notify(context.Background(), userID, "two", models.NotificationSpendingAlert))
	require.NoError(t, svc.Notify(context.Background(), other, "keep", models.NotificationSpendingAlert))

	require.NoError(t, svc.DeleteAllNotifications(context.Background(), userID))

	mine, err := svc.ListNotifications(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := svc.ListNotifications(context.Background(), other)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
