package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/pkg/mailer"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimHandler handles the claim workflow: filing, cancellation and admin
// adjudication.
type ClaimHandler struct {
	claimRepository         repositories.ClaimRepository
	itemRepository          repositories.ItemRepository
	userRepository          repositories.UserRepository
	communicationRepository repositories.CommunicationRepository
	mail                    mailer.Mailer
}

// NewClaimHandler creates a new ClaimHandler
func NewClaimHandler(
	claimRepo repositories.ClaimRepository,
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	commRepo repositories.CommunicationRepository,
	mail mailer.Mailer,
) *ClaimHandler {
	return &ClaimHandler{
		claimRepository:         claimRepo,
		itemRepository:          itemRepo,
		userRepository:          userRepo,
		communicationRepository: commRepo,
		mail:                    mail,
	}
}

// RegisterClaimRoutes registers session-protected claim routes
func (h *ClaimHandler) RegisterClaimRoutes(g *echo.Group) {
	g.POST("/found-items/claim", h.FileClaim)
	g.PUT("/claims/:id/cancel", h.CancelClaim)
	g.GET("/claims/my", h.MyClaims)
}

// RegisterAdminClaimRoutes registers admin-only claim routes
func (h *ClaimHandler) RegisterAdminClaimRoutes(g *echo.Group) {
	g.GET("/claims", h.ListClaims)
	g.PUT("/claims/process", h.ProcessClaim)
	g.PUT("/claims/:id", h.UpdateClaim)
}

// FileClaim records a user's claim against a found item
func (h *ClaimHandler) FileClaim(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.FileClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	item, err := h.itemRepository.GetFoundItemByID(ctx, req.FoundItemID)
	if err != nil {
		return repoError(err, "Found item not found", "")
	}
	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return repoError(err, "Claimant not found", "")
	}

	// A found item is claimable only once.
	if item.Status == models.FoundStatusClaimed {
		return echo.NewHTTPError(http.StatusConflict, "This item has already been claimed")
	}

	active, err := h.claimRepository.HasActiveClaim(ctx, item.ID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if active {
		return echo.NewHTTPError(http.StatusConflict, "You have already claimed this item")
	}

	claim := &models.ClaimRequest{
		FoundItemID:    item.ID,
		ClaimantID:     userID,
		OwnershipProof: req.OwnershipProof,
		ContactDetails: req.ContactDetails,
		Reason:         req.Reason,
	}
	if req.LostItemID != "" {
		lostID, err := primitive.ObjectIDFromHex(req.LostItemID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid lostItemId format")
		}
		claim.LostItemID = &lostID
	}

	if err := h.claimRepository.CreateClaim(ctx, claim); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusCreated, claim)
}

// CancelClaim withdraws the caller's own pending claim
func (h *ClaimHandler) CancelClaim(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CancelClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	claim, err := h.claimRepository.GetClaimByID(ctx, c.Param("id"))
	if err != nil {
		return repoError(err, "Claim not found", "")
	}
	if claim.ClaimantID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only cancel your own claims")
	}

	claim, err = h.claimRepository.CancelClaim(ctx, c.Param("id"), req.Reason)
	if err != nil {
		return repoError(err, "Claim not found", "Claim has already been processed")
	}
	return respond(c, http.StatusOK, claim)
}

// MyClaims lists the caller's claims, newest first
func (h *ClaimHandler) MyClaims(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	claims, err := h.claimRepository.ListClaimsByClaimant(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return respond(c, http.StatusOK, claims)
}

// EnrichedClaim includes the claimed item and claimant for admin display
type EnrichedClaim struct {
	models.ClaimRequest
	Item     *models.FoundItem  `json:"item,omitempty"`
	Claimant models.UserCompact `json:"claimant"`
}

func (h *ClaimHandler) enrichClaims(c echo.Context, claims []models.ClaimRequest) []EnrichedClaim {
	enriched := make([]EnrichedClaim, len(claims))
	userCache := make(map[uint]models.UserCompact)

	for i, claim := range claims {
		enriched[i] = EnrichedClaim{ClaimRequest: claim}

		if compact, ok := userCache[claim.ClaimantID]; ok {
			enriched[i].Claimant = compact
		} else if user, err := h.userRepository.GetUserByID(claim.ClaimantID); err == nil {
			compact := user.ToCompact()
			userCache[claim.ClaimantID] = compact
			enriched[i].Claimant = compact
		}

		item, err := h.itemRepository.GetFoundItemByID(c.Request().Context(), claim.FoundItemID.Hex())
		if err == nil {
			enriched[i].Item = item
		}
	}
	return enriched
}

// ListClaims returns claims for the admin dashboard, optionally filtered by
// status, with item and claimant resolved
func (h *ClaimHandler) ListClaims(c echo.Context) error {
	page, limit := pageParams(c)
	status := c.QueryParam("status")

	claims, total, err := h.claimRepository.ListClaims(c.Request().Context(), status, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusOK, echo.Map{
		"claims":     h.enrichClaims(c, claims),
		"pagination": models.NewPagination(page, limit, len(claims), total),
	})
}

// ProcessClaim applies the admin decision. Approval also transitions the
// target item to claimed and records the claimant on it; the two writes are
// sequential, not transactional (the document store has no multi-document
// atomicity here).
func (h *ClaimHandler) ProcessClaim(c echo.Context) error {
	adminID := currentUserID(c)

	var req models.ProcessClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := models.ClaimStatusRejected
	if *req.Approved {
		status = models.ClaimStatusApproved
	}

	ctx := c.Request().Context()
	claim, err := h.claimRepository.ProcessClaim(ctx, req.ClaimID, status, adminID, req.AdminNotes)
	if err != nil {
		return repoError(err, "Claim not found", "Claim has already been processed")
	}

	if *req.Approved {
		if err := h.itemRepository.MarkFoundItemClaimed(ctx, claim.FoundItemID.Hex(), claim.ClaimantID); err != nil {
			log.Printf("Claim %s approved but item update failed: %v\n", req.ClaimID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Claim approved but item update failed")
		}
	}

	h.notifyClaimant(c, claim, *req.Approved)

	return respond(c, http.StatusOK, claim)
}

// UpdateClaim is the path-parameter form of claim processing: body carries
// {status, adminNotes} with status approved or rejected.
func (h *ClaimHandler) UpdateClaim(c echo.Context) error {
	var req struct {
		Status     string `json:"status" validate:"required,oneof=approved rejected"`
		AdminNotes string `json:"adminNotes,omitempty" validate:"omitempty,max=2000"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	approved := req.Status == models.ClaimStatusApproved
	adminID := currentUserID(c)

	ctx := c.Request().Context()
	claim, err := h.claimRepository.ProcessClaim(ctx, c.Param("id"), req.Status, adminID, req.AdminNotes)
	if err != nil {
		return repoError(err, "Claim not found", "Claim has already been processed")
	}

	if approved {
		if err := h.itemRepository.MarkFoundItemClaimed(ctx, claim.FoundItemID.Hex(), claim.ClaimantID); err != nil {
			log.Printf("Claim %s approved but item update failed: %v\n", c.Param("id"), err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Claim approved but item update failed")
		}
	}

	h.notifyClaimant(c, claim, approved)

	return respond(c, http.StatusOK, claim)
}

// notifyClaimant records the decision in the communication log and hands the
// email to the mailer. Log failures are logged, never surfaced: the claim
// decision already stands.
func (h *ClaimHandler) notifyClaimant(c echo.Context, claim *models.ClaimRequest, approved bool) {
	claimant, err := h.userRepository.GetUserByID(claim.ClaimantID)
	if err != nil {
		log.Printf("Cannot notify claimant %d: %v\n", claim.ClaimantID, err)
		return
	}

	subject := "Your claim was rejected"
	body := "An administrator reviewed your claim and rejected it."
	template := "claim_rejected"
	if approved {
		subject = "Your claim was approved"
		body = "An administrator approved your claim. Please arrange pickup of your item."
		template = "claim_approved"
	}

	status := models.DeliveryStatusSent
	if err := h.mail.Send(claimant.Email, subject, body); err != nil {
		log.Printf("Email delivery to %s failed: %v\n", claimant.Email, err)
		status = models.DeliveryStatusFailed
	}

	itemID := claim.FoundItemID
	comm := &models.CommunicationHistory{
		SenderID:     currentUserID(c),
		RecipientID:  claim.ClaimantID,
		ItemID:       &itemID,
		ItemType:     models.ItemTypeFound,
		Subject:      subject,
		Body:         body,
		Type:         models.CommunicationTypeEmail,
		Status:       status,
		TemplateName: template,
		SentAt:       time.Now(),
	}
	if err := h.communicationRepository.CreateCommunication(c.Request().Context(), comm); err != nil {
		log.Printf("Failed to log claim notification: %v\n", err)
	}
}
