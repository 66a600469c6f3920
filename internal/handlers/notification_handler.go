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

// NotificationHandler handles outbound notifications and the communication log
type NotificationHandler struct {
	communicationRepository repositories.CommunicationRepository
	userRepository          repositories.UserRepository
	mail                    mailer.Mailer
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	commRepo repositories.CommunicationRepository,
	userRepo repositories.UserRepository,
	mail mailer.Mailer,
) *NotificationHandler {
	return &NotificationHandler{
		communicationRepository: commRepo,
		userRepository:          userRepo,
		mail:                    mail,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notifications/send", h.SendNotification)
	g.GET("/notifications", h.GetNotifications)
}

// SendNotification emails another user and records the attempt in the
// communication log. The record persists whether or not delivery succeeded;
// its status reflects the outcome.
func (h *NotificationHandler) SendNotification(c echo.Context) error {
	senderID := currentUserID(c)
	if senderID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(senderID); err != nil {
		return repoError(err, "Sender not found", "")
	}
	recipient, err := h.userRepository.GetUserByID(req.UserID)
	if err != nil {
		return repoError(err, "Recipient not found", "")
	}

	comm := &models.CommunicationHistory{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Subject:     req.Subject,
		Body:        req.Message,
		Type:        models.CommunicationTypeEmail,
		IPAddress:   c.RealIP(),
		UserAgent:   c.Request().UserAgent(),
		SentAt:      time.Now(),
	}
	if req.ItemID != "" {
		itemID, err := primitive.ObjectIDFromHex(req.ItemID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid itemId format")
		}
		comm.ItemID = &itemID
		comm.ItemType = req.ItemType
	}

	comm.Status = models.DeliveryStatusSent
	if err := h.mail.Send(recipient.Email, req.Subject, req.Message); err != nil {
		log.Printf("Email delivery to %s failed: %v\n", recipient.Email, err)
		comm.Status = models.DeliveryStatusFailed
	}

	if err := h.communicationRepository.CreateCommunication(c.Request().Context(), comm); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusCreated, comm)
}

// GetNotifications returns the caller's received communications, paginated
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := pageParams(c)
	comms, total, err := h.communicationRepository.ListByRecipient(c.Request().Context(), userID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respond(c, http.StatusOK, echo.Map{
		"notifications": comms,
		"pagination":    models.NewPagination(page, limit, len(comms), total),
	})
}
