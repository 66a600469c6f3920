package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, path, body string, claims *models.JwtCustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", claims)
	}
	return c, rec
}

func userClaims(id uint) *models.JwtCustomClaims {
	return &models.JwtCustomClaims{UserID: id, Role: models.RoleUser}
}

func adminClaims(id uint) *models.JwtCustomClaims {
	return &models.JwtCustomClaims{UserID: id, Role: models.RoleAdmin}
}

func seedFoundItem(itemRepo *fakeItemRepo, reporter uint) *models.FoundItem {
	item := &models.FoundItem{
		ReportedBy:    reporter,
		Name:          "Black Wallet",
		Category:      "Accessories",
		Description:   "Leather wallet found near the library entrance",
		FoundLocation: "Library",
		FoundDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:        models.FoundStatusPending,
		ContactEmail:  "finder@example.com",
	}
	_ = itemRepo.CreateFoundItem(nil, item)
	return item
}

func newClaimHandler() (*ClaimHandler, *fakeItemRepo, *fakeClaimRepo, *fakeUserRepo, *fakeCommRepo, *fakeMailer) {
	itemRepo := newFakeItemRepo()
	claimRepo := newFakeClaimRepo()
	userRepo := newFakeUserRepo(
		&models.User{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleUser},
		&models.User{ID: 2, Name: "Ben", Email: "ben@example.com", Role: models.RoleUser},
		&models.User{ID: 9, Name: "Root", Email: "admin@example.com", Role: models.RoleAdmin},
	)
	commRepo := &fakeCommRepo{}
	mail := &fakeMailer{}
	h := NewClaimHandler(claimRepo, itemRepo, userRepo, commRepo, mail)
	return h, itemRepo, claimRepo, userRepo, commRepo, mail
}

func claimBody(itemID string) string {
	return `{"foundItemId":"` + itemID + `","ownershipProof":"Receipt with serial number","contactDetails":"asha@example.com"}`
}

func TestFileClaim(t *testing.T) {
	h, itemRepo, _, _, _, _ := newClaimHandler()
	item := seedFoundItem(itemRepo, 2)

	c, rec := newTestContext(t, http.MethodPost, "/found-items/claim", claimBody(item.ID.Hex()), userClaims(1))
	require.NoError(t, h.FileClaim(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), models.ClaimStatusPending)
}

func TestFileClaimItemMissing(t *testing.T) {
	h, _, _, _, _, _ := newClaimHandler()

	c, _ := newTestContext(t, http.MethodPost, "/found-items/claim", claimBody("64f000000000000000000000"), userClaims(1))
	err := h.FileClaim(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestFileClaimDuplicate(t *testing.T) {
	h, itemRepo, _, _, _, _ := newClaimHandler()
	item := seedFoundItem(itemRepo, 2)

	c, _ := newTestContext(t, http.MethodPost, "/found-items/claim", claimBody(item.ID.Hex()), userClaims(1))
	require.NoError(t, h.FileClaim(c))

	// Second claim by the same claimant on the same item must conflict.
	c, _ = newTestContext(t, http.MethodPost, "/found-items/claim", claimBody(item.ID.Hex()), userClaims(1))
	err := h.FileClaim(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Contains(t, he.Message.(string), "already claimed")
}

func TestFileClaimOnClaimedItem(t *testing.T) {
	h, itemRepo, _, _, _, _ := newClaimHandler()
	item := seedFoundItem(itemRepo, 2)
	item.Status = models.FoundStatusClaimed

	c, _ := newTestContext(t, http.MethodPost, "/found-items/claim", claimBody(item.ID.Hex()), userClaims(1))
	err := h.FileClaim(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func fileClaimForTest(t *testing.T, h *ClaimHandler, itemRepo *fakeItemRepo, claimRepo *fakeClaimRepo, claimant uint) (*models.FoundItem, *models.ClaimRequest) {
	t.Helper()
	item := seedFoundItem(itemRepo, 2)
	c, _ := newTestContext(t, http.MethodPost, "/found-items/claim", claimBody(item.ID.Hex()), userClaims(claimant))
	require.NoError(t, h.FileClaim(c))
	require.Len(t, claimRepo.claims, 1)
	for _, claim := range claimRepo.claims {
		return item, claim
	}
	return item, nil
}

func TestProcessClaimApprove(t *testing.T) {
	h, itemRepo, claimRepo, _, commRepo, mail := newClaimHandler()
	item, claim := fileClaimForTest(t, h, itemRepo, claimRepo, 1)

	body := `{"claimId":"` + claim.ID.Hex() + `","approved":true,"adminNotes":"proof checks out"}`
	c, rec := newTestContext(t, http.MethodPut, "/admin/claims/process", body, adminClaims(9))
	require.NoError(t, h.ProcessClaim(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, models.ClaimStatusApproved, claim.Status)
	assert.Equal(t, uint(9), claim.ProcessedBy)
	assert.Equal(t, models.FoundStatusClaimed, item.Status)
	assert.Equal(t, uint(1), item.ClaimedBy)

	// Approval notifies the claimant and logs the communication.
	require.Len(t, commRepo.created, 1)
	assert.Equal(t, uint(1), commRepo.created[0].RecipientID)
	assert.Equal(t, models.DeliveryStatusSent, commRepo.created[0].Status)
	assert.Equal(t, []string{"asha@example.com"}, mail.sent)
}

func TestProcessClaimReject(t *testing.T) {
	h, itemRepo, claimRepo, _, _, _ := newClaimHandler()
	item, claim := fileClaimForTest(t, h, itemRepo, claimRepo, 1)

	body := `{"claimId":"` + claim.ID.Hex() + `","approved":false}`
	c, _ := newTestContext(t, http.MethodPut, "/admin/claims/process", body, adminClaims(9))
	require.NoError(t, h.ProcessClaim(c))

	assert.Equal(t, models.ClaimStatusRejected, claim.Status)
	// Rejection leaves the item untouched.
	assert.Equal(t, models.FoundStatusPending, item.Status)
	assert.Zero(t, item.ClaimedBy)
}

func TestProcessClaimAlreadyProcessed(t *testing.T) {
	h, itemRepo, claimRepo, _, _, _ := newClaimHandler()
	_, claim := fileClaimForTest(t, h, itemRepo, claimRepo, 1)
	claim.Status = models.ClaimStatusApproved

	body := `{"claimId":"` + claim.ID.Hex() + `","approved":true}`
	c, _ := newTestContext(t, http.MethodPut, "/admin/claims/process", body, adminClaims(9))
	err := h.ProcessClaim(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestProcessClaimNotFound(t *testing.T) {
	h, _, _, _, _, _ := newClaimHandler()

	body := `{"claimId":"64f000000000000000000000","approved":true}`
	c, _ := newTestContext(t, http.MethodPut, "/admin/claims/process", body, adminClaims(9))
	err := h.ProcessClaim(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCancelClaim(t *testing.T) {
	h, itemRepo, claimRepo, _, _, _ := newClaimHandler()
	_, claim := fileClaimForTest(t, h, itemRepo, claimRepo, 1)

	c, rec := newTestContext(t, http.MethodPut, "/claims/"+claim.ID.Hex()+"/cancel", `{"reason":"found it myself"}`, userClaims(1))
	c.SetParamNames("id")
	c.SetParamValues(claim.ID.Hex())
	require.NoError(t, h.CancelClaim(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ClaimStatusCanceled, claim.Status)
	assert.Equal(t, "found it myself", claim.CancellationReason)
}

func TestCancelClaimWrongUser(t *testing.T) {
	h, itemRepo, claimRepo, _, _, _ := newClaimHandler()
	_, claim := fileClaimForTest(t, h, itemRepo, claimRepo, 1)

	c, _ := newTestContext(t, http.MethodPut, "/claims/"+claim.ID.Hex()+"/cancel", "", userClaims(2))
	c.SetParamNames("id")
	c.SetParamValues(claim.ID.Hex())
	err := h.CancelClaim(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestProcessClaimDeliveryFailureStillLogged(t *testing.T) {
	h, itemRepo, claimRepo, _, commRepo, mail := newClaimHandler()
	_, claim := fileClaimForTest(t, h, itemRepo, claimRepo, 1)
	mail.fail = true

	body := `{"claimId":"` + claim.ID.Hex() + `","approved":true}`
	c, _ := newTestContext(t, http.MethodPut, "/admin/claims/process", body, adminClaims(9))
	require.NoError(t, h.ProcessClaim(c))

	require.Len(t, commRepo.created, 1)
	assert.Equal(t, models.DeliveryStatusFailed, commRepo.created[0].Status)
}
