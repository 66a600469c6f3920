package handlers

import (
	"net/http"
	"testing"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationHandler() (*NotificationHandler, *fakeCommRepo, *fakeMailer) {
	userRepo := newFakeUserRepo(
		&models.User{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleUser},
		&models.User{ID: 2, Name: "Ben", Email: "ben@example.com", Role: models.RoleUser},
	)
	commRepo := &fakeCommRepo{}
	mail := &fakeMailer{}
	return NewNotificationHandler(commRepo, userRepo, mail), commRepo, mail
}

func TestSendNotification(t *testing.T) {
	h, commRepo, mail := newNotificationHandler()

	body := `{"userId":2,"subject":"About your wallet","message":"I think I found it."}`
	c, rec := newTestContext(t, http.MethodPost, "/notifications/send", body, userClaims(1))
	require.NoError(t, h.SendNotification(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, []string{"ben@example.com"}, mail.sent)
	require.Len(t, commRepo.created, 1)
	assert.Equal(t, uint(1), commRepo.created[0].SenderID)
	assert.Equal(t, uint(2), commRepo.created[0].RecipientID)
	assert.Equal(t, models.DeliveryStatusSent, commRepo.created[0].Status)
}

func TestSendNotificationRecipientMissing(t *testing.T) {
	h, commRepo, _ := newNotificationHandler()

	body := `{"userId":42,"subject":"Hello","message":"Anyone there?"}`
	c, _ := newTestContext(t, http.MethodPost, "/notifications/send", body, userClaims(1))
	err := h.SendNotification(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Empty(t, commRepo.created)
}

func TestSendNotificationDeliveryFailureStillLogged(t *testing.T) {
	h, commRepo, mail := newNotificationHandler()
	mail.fail = true

	body := `{"userId":2,"subject":"About your wallet","message":"I think I found it."}`
	c, rec := newTestContext(t, http.MethodPost, "/notifications/send", body, userClaims(1))
	require.NoError(t, h.SendNotification(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, commRepo.created, 1)
	assert.Equal(t, models.DeliveryStatusFailed, commRepo.created[0].Status)
}

func TestSendNotificationBadItemID(t *testing.T) {
	h, _, _ := newNotificationHandler()

	body := `{"userId":2,"subject":"Hi","message":"About the item","itemId":"not-a-hex","itemType":"found"}`
	c, _ := newTestContext(t, http.MethodPost, "/notifications/send", body, userClaims(1))
	err := h.SendNotification(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetNotifications(t *testing.T) {
	h, commRepo, _ := newNotificationHandler()

	send := func(body string) {
		c, _ := newTestContext(t, http.MethodPost, "/notifications/send", body, userClaims(1))
		require.NoError(t, h.SendNotification(c))
	}
	send(`{"userId":2,"subject":"First","message":"one"}`)
	send(`{"userId":2,"subject":"Second","message":"two"}`)

	c, rec := newTestContext(t, http.MethodGet, "/notifications", "", userClaims(2))
	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"First"`)
	assert.Contains(t, rec.Body.String(), `"Second"`)
	assert.Contains(t, rec.Body.String(), `"pagination"`)
	require.Len(t, commRepo.created, 2)
}
