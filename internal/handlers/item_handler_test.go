package handlers

import (
	"net/http"
	"testing"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foundItemBody(category string) string {
	return `{
		"name": "Silver Laptop",
		"category": "` + category + `",
		"description": "Thin silver laptop with stickers on the lid",
		"foundLocation": "Cafeteria",
		"foundDate": "2024-01-10",
		"contactEmail": "finder@example.com"
	}`
}

func TestReportFoundItem(t *testing.T) {
	itemRepo := newFakeItemRepo()
	h := NewItemHandler(itemRepo)

	c, rec := newTestContext(t, http.MethodPost, "/found-items", foundItemBody("Electronics"), userClaims(1))
	require.NoError(t, h.ReportFoundItem(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, itemRepo.foundItems, 1)
	for _, item := range itemRepo.foundItems {
		assert.Equal(t, uint(1), item.ReportedBy)
		assert.Equal(t, models.FoundStatusPending, item.Status)
		assert.False(t, item.IsVerified)
		assert.Equal(t, 2024, item.FoundDate.Year())
	}
}

func TestReportFoundItemUnknownCategory(t *testing.T) {
	h := NewItemHandler(newFakeItemRepo())

	c, _ := newTestContext(t, http.MethodPost, "/found-items", foundItemBody("Spaceships"), userClaims(1))
	err := h.ReportFoundItem(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestReportFoundItemMissingFields(t *testing.T) {
	h := NewItemHandler(newFakeItemRepo())

	c, _ := newTestContext(t, http.MethodPost, "/found-items", `{"name":"X"}`, userClaims(1))
	err := h.ReportFoundItem(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestReportFoundItemUnauthenticated(t *testing.T) {
	h := NewItemHandler(newFakeItemRepo())

	c, _ := newTestContext(t, http.MethodPost, "/found-items", foundItemBody("Electronics"), nil)
	err := h.ReportFoundItem(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestReportLostItem(t *testing.T) {
	itemRepo := newFakeItemRepo()
	h := NewItemHandler(itemRepo)

	body := `{
		"name": "House Keys",
		"category": "Keys",
		"description": "Bundle of three keys on a red keyring",
		"lostLocation": "Bus stop on 5th",
		"lostDate": "2024-02-02",
		"contactEmail": "owner@example.com"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/lost-items", body, userClaims(3))
	require.NoError(t, h.ReportLostItem(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, itemRepo.lostItems, 1)
	for _, item := range itemRepo.lostItems {
		assert.Equal(t, models.LostStatusLost, item.Status)
		assert.Equal(t, uint(3), item.ReportedBy)
	}
}

func TestGetFoundItemNotFound(t *testing.T) {
	h := NewItemHandler(newFakeItemRepo())

	c, _ := newTestContext(t, http.MethodGet, "/found-items/64f000000000000000000000", "", userClaims(1))
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000000")
	err := h.GetFoundItem(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestItemDateFormats(t *testing.T) {
	d, err := itemDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Day())

	d, err = itemDate("2024-01-10T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Hour())

	_, err = itemDate("10/01/2024")
	assert.Error(t, err)
}
