package handlers

import (
	"net/http"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"github.com/labstack/echo/v4"
)

// VerificationHandler handles the admin verification checklist on found
// items. Toggling a step never touches the aggregate is_verified flag; that
// only moves through the update-status operation.
type VerificationHandler struct {
	itemRepository repositories.ItemRepository
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(itemRepo repositories.ItemRepository) *VerificationHandler {
	return &VerificationHandler{itemRepository: itemRepo}
}

// RegisterAdminVerificationRoutes registers admin-only verification routes
func (h *VerificationHandler) RegisterAdminVerificationRoutes(g *echo.Group) {
	g.POST("/verification", h.SetVerificationStep)
	g.GET("/verification/:itemId", h.GetVerificationDetails)
}

// SetVerificationStep toggles one checklist step on a found item
func (h *VerificationHandler) SetVerificationStep(c echo.Context) error {
	adminID := currentUserID(c)

	var req models.SetVerificationStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stepField, ok := models.VerificationStepTypes[req.StepType]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown stepType: "+req.StepType)
	}

	now := time.Now()
	step := models.VerificationStep{
		Verified:   *req.Verified,
		Notes:      req.Notes,
		VerifiedBy: adminID,
		VerifiedAt: &now,
	}

	if err := h.itemRepository.SetVerificationStep(c.Request().Context(), req.ItemID, stepField, step); err != nil {
		return repoError(err, "Item not found", "")
	}

	return respond(c, http.StatusOK, echo.Map{
		"itemId":   req.ItemID,
		"stepType": req.StepType,
		"verified": *req.Verified,
	})
}

// GetVerificationDetails returns the full verification sub-record of an item
func (h *VerificationHandler) GetVerificationDetails(c echo.Context) error {
	item, err := h.itemRepository.GetVerification(c.Request().Context(), c.Param("itemId"))
	if err != nil {
		return repoError(err, "Item not found", "")
	}

	return respond(c, http.StatusOK, echo.Map{
		"item_id":      item.ID,
		"is_verified":  item.IsVerified,
		"verification": item.Verification,
	})
}
