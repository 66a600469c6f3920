package handlers

import (
	"net/http"
	"time"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ItemHandler handles HTTP requests for lost and found item reports
type ItemHandler struct {
	itemRepository repositories.ItemRepository
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemRepo repositories.ItemRepository) *ItemHandler {
	return &ItemHandler{itemRepository: itemRepo}
}

// RegisterPublicRoutes registers routes that need no session
func (h *ItemHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/items", h.SearchItems)
}

// RegisterItemRoutes registers session-protected item routes
func (h *ItemHandler) RegisterItemRoutes(g *echo.Group) {
	g.POST("/lost-items", h.ReportLostItem)
	g.GET("/lost-items/:id", h.GetLostItem)
	g.POST("/found-items", h.ReportFoundItem)
	g.POST("/items/report-found", h.ReportFoundItem) // legacy alias
	g.GET("/found-items/:id", h.GetFoundItem)
}

// itemDate parses the date fields of report payloads; both date-only and
// RFC3339 timestamps are accepted.
func itemDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// SearchItems searches lost and found items with filters and pagination
func (h *ItemHandler) SearchItems(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repositories.ItemSearchFilter{
		Query:     c.QueryParam("query"),
		Category:  c.QueryParam("category"),
		Kind:      c.QueryParam("type"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Page:      page,
		Limit:     limit,
	}
	if filter.Kind == "" {
		filter.Kind = repositories.KindAll
	}

	if from := c.QueryParam("dateFrom"); from != "" {
		t, err := itemDate(from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid dateFrom")
		}
		filter.DateFrom = &t
	}
	if to := c.QueryParam("dateTo"); to != "" {
		t, err := itemDate(to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid dateTo")
		}
		// Date-only upper bounds are inclusive of the whole day.
		if len(to) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.DateTo = &t
	}

	result, err := h.itemRepository.SearchItems(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusOK, echo.Map{
		"items":      result.Items,
		"pagination": models.NewPagination(page, limit, len(result.Items), result.Total),
	})
}

// ReportLostItem creates a new lost item report for the current user
func (h *ItemHandler) ReportLostItem(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateLostItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.IsValidCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown category: "+req.Category)
	}

	lostDate, err := itemDate(req.LostDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid lostDate")
	}

	item := &models.LostItem{
		ReportedBy:   userID,
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		LostLocation: req.LostLocation,
		LostDate:     lostDate,
		ImageURLs:    req.ImageURLs,
		PrimaryImage: req.PrimaryImage,
		Status:       models.LostStatusLost,
		IsVerified:   false,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	if err := h.itemRepository.CreateLostItem(c.Request().Context(), item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusCreated, item)
}

// ReportFoundItem creates a new found item report for the current user
func (h *ItemHandler) ReportFoundItem(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateFoundItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.IsValidCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown category: "+req.Category)
	}

	foundDate, err := itemDate(req.FoundDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid foundDate")
	}

	item := &models.FoundItem{
		ReportedBy:    userID,
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		FoundLocation: req.FoundLocation,
		FoundDate:     foundDate,
		ImageURLs:     req.ImageURLs,
		PrimaryImage:  req.PrimaryImage,
		Status:        models.FoundStatusPending,
		IsVerified:    false,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
	}

	if err := h.itemRepository.CreateFoundItem(c.Request().Context(), item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusCreated, item)
}

// GetLostItem retrieves one lost item by ID
func (h *ItemHandler) GetLostItem(c echo.Context) error {
	item, err := h.itemRepository.GetLostItemByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return repoError(err, "Lost item not found", "")
	}
	return respond(c, http.StatusOK, item)
}

// GetFoundItem retrieves one found item by ID
func (h *ItemHandler) GetFoundItem(c echo.Context) error {
	item, err := h.itemRepository.GetFoundItemByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return repoError(err, "Found item not found", "")
	}
	return respond(c, http.StatusOK, item)
}
