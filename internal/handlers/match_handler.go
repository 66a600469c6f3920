package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/pkg/mailer"
	"github.com/labstack/echo/v4"
)

// MatchHandler handles candidate pairings between lost and found items
type MatchHandler struct {
	matchRepository         repositories.MatchRepository
	itemRepository          repositories.ItemRepository
	userRepository          repositories.UserRepository
	communicationRepository repositories.CommunicationRepository
	mail                    mailer.Mailer
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(
	matchRepo repositories.MatchRepository,
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	commRepo repositories.CommunicationRepository,
	mail mailer.Mailer,
) *MatchHandler {
	return &MatchHandler{
		matchRepository:         matchRepo,
		itemRepository:          itemRepo,
		userRepository:          userRepo,
		communicationRepository: commRepo,
		mail:                    mail,
	}
}

// RegisterMatchRoutes registers session-protected match routes
func (h *MatchHandler) RegisterMatchRoutes(g *echo.Group) {
	g.GET("/matches/user", h.ListUserMatches)
}

// RegisterAdminMatchRoutes registers admin-only match routes
func (h *MatchHandler) RegisterAdminMatchRoutes(g *echo.Group) {
	g.POST("/matches", h.CreateMatch)
	g.PUT("/matches/:id/confirm", h.ConfirmMatch)
}

// CreateMatch pairs a lost item with a found item as a pending candidate
func (h *MatchHandler) CreateMatch(c echo.Context) error {
	adminID := currentUserID(c)

	var req models.CreateMatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	lost, err := h.itemRepository.GetLostItemByID(ctx, req.LostItemID)
	if err != nil {
		return repoError(err, "Lost item not found", "")
	}
	found, err := h.itemRepository.GetFoundItemByID(ctx, req.FoundItemID)
	if err != nil {
		return repoError(err, "Found item not found", "")
	}

	match := &models.ItemMatch{
		LostItemID:  lost.ID,
		FoundItemID: found.ID,
		MatchedBy:   adminID,
		MatchType:   req.MatchType,
	}
	if err := h.matchRepository.CreateMatch(ctx, match); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusCreated, match)
}

// ConfirmMatch records the admin decision on a pending match. Confirmation
// notifies both reporters; item status is never changed here, only through
// the claim path.
func (h *MatchHandler) ConfirmMatch(c echo.Context) error {
	adminID := currentUserID(c)

	var req models.ConfirmMatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := models.MatchStatusRejected
	if *req.Accept {
		status = models.MatchStatusConfirmed
	}

	match, err := h.matchRepository.ConfirmMatch(c.Request().Context(), c.Param("id"), status, adminID)
	if err != nil {
		return repoError(err, "Match not found", "Match has already been decided")
	}

	if *req.Accept {
		h.notifyMatchParties(c, match)
	}

	return respond(c, http.StatusOK, match)
}

// notifyMatchParties tells both reporters their items were paired. Failures
// are logged only; the match decision stands either way.
func (h *MatchHandler) notifyMatchParties(c echo.Context, match *models.ItemMatch) {
	ctx := c.Request().Context()

	lost, err := h.itemRepository.GetLostItemByID(ctx, match.LostItemID.Hex())
	if err != nil {
		log.Printf("Cannot notify about match %s: %v\n", match.ID.Hex(), err)
		return
	}
	found, err := h.itemRepository.GetFoundItemByID(ctx, match.FoundItemID.Hex())
	if err != nil {
		log.Printf("Cannot notify about match %s: %v\n", match.ID.Hex(), err)
		return
	}

	subject := "Possible match for your item"
	parties := []struct {
		userID   uint
		itemType string
		body     string
	}{
		{lost.ReportedBy, models.ItemTypeLost, "A found item matching your lost report has been confirmed. Please review it and file a claim."},
		{found.ReportedBy, models.ItemTypeFound, "The item you reported as found has been matched with a lost report."},
	}

	for _, p := range parties {
		user, err := h.userRepository.GetUserByID(p.userID)
		if err != nil {
			log.Printf("Cannot notify user %d about match: %v\n", p.userID, err)
			continue
		}

		status := models.DeliveryStatusSent
		if err := h.mail.Send(user.Email, subject, p.body); err != nil {
			log.Printf("Email delivery to %s failed: %v\n", user.Email, err)
			status = models.DeliveryStatusFailed
		}

		itemID := match.LostItemID
		if p.itemType == models.ItemTypeFound {
			itemID = match.FoundItemID
		}
		comm := &models.CommunicationHistory{
			SenderID:     match.ConfirmedBy,
			RecipientID:  p.userID,
			ItemID:       &itemID,
			ItemType:     p.itemType,
			Subject:      subject,
			Body:         p.body,
			Type:         models.CommunicationTypeEmail,
			Status:       status,
			TemplateName: "match_confirmed",
			SentAt:       time.Now(),
		}
		if err := h.communicationRepository.CreateCommunication(ctx, comm); err != nil {
			log.Printf("Failed to log match notification: %v\n", err)
		}
	}
}

// EnrichedMatch includes both items and their reporters for display
type EnrichedMatch struct {
	models.ItemMatch
	LostItem      *models.LostItem   `json:"lost_item,omitempty"`
	FoundItem     *models.FoundItem  `json:"found_item,omitempty"`
	LostReporter  models.UserCompact `json:"lost_reporter"`
	FoundReporter models.UserCompact `json:"found_reporter"`
}

// ListUserMatches returns matches touching any item the caller reported,
// with nested item and reporter details resolved
func (h *MatchHandler) ListUserMatches(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx := c.Request().Context()
	lostIDs, foundIDs, err := h.itemRepository.ListOwnedItemIDs(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	matches, err := h.matchRepository.ListMatchesByItemIDs(ctx, lostIDs, foundIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := make([]EnrichedMatch, len(matches))
	userCache := make(map[uint]models.UserCompact)
	reporter := func(id uint) models.UserCompact {
		if compact, ok := userCache[id]; ok {
			return compact
		}
		user, err := h.userRepository.GetUserByID(id)
		if err != nil {
			return models.UserCompact{}
		}
		compact := user.ToCompact()
		userCache[id] = compact
		return compact
	}

	for i, match := range matches {
		enriched[i] = EnrichedMatch{ItemMatch: match}
		if lost, err := h.itemRepository.GetLostItemByID(ctx, match.LostItemID.Hex()); err == nil {
			enriched[i].LostItem = lost
			enriched[i].LostReporter = reporter(lost.ReportedBy)
		}
		if found, err := h.itemRepository.GetFoundItemByID(ctx, match.FoundItemID.Hex()); err == nil {
			enriched[i].FoundItem = found
			enriched[i].FoundReporter = reporter(found.ReportedBy)
		}
	}

	return respond(c, http.StatusOK, enriched)
}
