package handlers

import (
	"net/http"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the admin item listing, status updates and the
// dashboard read views.
type AdminHandler struct {
	itemRepository          repositories.ItemRepository
	claimRepository         repositories.ClaimRepository
	matchRepository         repositories.MatchRepository
	userRepository          repositories.UserRepository
	communicationRepository repositories.CommunicationRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	itemRepo repositories.ItemRepository,
	claimRepo repositories.ClaimRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	commRepo repositories.CommunicationRepository,
) *AdminHandler {
	return &AdminHandler{
		itemRepository:          itemRepo,
		claimRepository:         claimRepo,
		matchRepository:         matchRepo,
		userRepository:          userRepo,
		communicationRepository: commRepo,
	}
}

// RegisterAdminRoutes registers admin-only item and dashboard routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/items", h.ListItems)
	g.PUT("/items/update-status", h.UpdateItemStatus)
	g.GET("/dashboard/stats", h.DashboardStats)
	g.GET("/dashboard/analytics", h.DashboardAnalytics)
}

// ListItems returns a filtered, paginated admin listing of found items along
// with the per-status statistics block.
func (h *AdminHandler) ListItems(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repositories.ItemSearchFilter{
		Query:     c.QueryParam("query"),
		Category:  c.QueryParam("category"),
		Status:    c.QueryParam("status"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Page:      page,
		Limit:     limit,
	}

	ctx := c.Request().Context()
	items, total, err := h.itemRepository.ListFoundItems(ctx, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	stats, err := h.itemRepository.GetStatistics(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusOK, echo.Map{
		"items":      items,
		"stats":      stats,
		"pagination": models.NewPagination(page, limit, len(items), total),
	})
}

// UpdateItemStatus applies an admin-facing status label to a found item.
// "verified" and "rejected" resolve through the label mapping to a stored
// status plus an explicit is_verified value.
func (h *AdminHandler) UpdateItemStatus(c echo.Context) error {
	var req models.UpdateItemStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update, ok := models.ResolveStatusLabel(req.Status)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown status: "+req.Status)
	}

	item, err := h.itemRepository.UpdateFoundItemStatus(c.Request().Context(), req.ItemID, update)
	if err != nil {
		return repoError(err, "Item not found", "")
	}
	return respond(c, http.StatusOK, item)
}

// DashboardStats returns entity counts and per-status breakdowns, recomputed
// per request with count queries.
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	ctx := c.Request().Context()

	itemStats, err := h.itemRepository.GetStatistics(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	claimStats := map[string]int64{}
	for _, status := range []string{models.ClaimStatusPending, models.ClaimStatusApproved, models.ClaimStatusRejected, models.ClaimStatusCanceled} {
		count, err := h.claimRepository.CountClaimsByStatus(ctx, status)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		claimStats[status] = count
	}

	matchStats := map[string]int64{}
	for _, status := range []string{models.MatchStatusPending, models.MatchStatusConfirmed, models.MatchStatusRejected} {
		count, err := h.matchRepository.CountMatchesByStatus(ctx, status)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		matchStats[status] = count
	}

	userCount, err := h.userRepository.CountUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusOK, echo.Map{
		"items":   itemStats,
		"claims":  claimStats,
		"matches": matchStats,
		"users":   userCount,
	})
}

// timeframeCutoff maps a timeframe name to its start time.
func timeframeCutoff(timeframe string) (time.Time, bool) {
	now := time.Now()
	switch timeframe {
	case "week", "":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// DashboardAnalytics returns creation-rate breakdowns for one timeframe.
func (h *AdminHandler) DashboardAnalytics(c echo.Context) error {
	timeframe := c.QueryParam("timeframe")
	if timeframe == "" {
		timeframe = "week"
	}
	since, ok := timeframeCutoff(timeframe)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown timeframe: "+timeframe)
	}

	ctx := c.Request().Context()

	lostCount, err := h.itemRepository.CountCreatedSince(ctx, repositories.KindLost, since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	foundCount, err := h.itemRepository.CountCreatedSince(ctx, repositories.KindFound, since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	byCategory := map[string]int64{}
	for _, category := range models.Categories {
		count, err := h.itemRepository.CountByCategorySince(ctx, category, since)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		byCategory[category] = count
	}

	claimCount, err := h.claimRepository.CountClaimsSince(ctx, since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	matchCount, err := h.matchRepository.CountMatchesSince(ctx, since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	commCount, err := h.communicationRepository.CountSince(ctx, since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	newUsers, err := h.userRepository.CountUsersSince(since)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusOK, echo.Map{
		"timeframe":      timeframe,
		"since":          since,
		"lost_items":     lostCount,
		"found_items":    foundCount,
		"by_category":    byCategory,
		"claims":         claimCount,
		"matches":        matchCount,
		"communications": commCount,
		"new_users":      newUsers,
	})
}
