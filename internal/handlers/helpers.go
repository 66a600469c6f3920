package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentClaims returns the JWT claims stored by the auth middleware, or nil
// on unauthenticated routes.
func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// currentUserID returns the authenticated user's ID, or 0 when absent.
func currentUserID(c echo.Context) uint {
	claims := currentClaims(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

// pageParams reads page/limit query parameters with the usual bounds.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

// respond wraps data in the API envelope.
func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, models.APIResponse{Success: true, Data: data})
}

// repoError maps repository sentinel errors onto HTTP errors. notFoundMsg and
// conflictMsg name the entity for the client; anything unrecognized becomes a
// 500 carrying the underlying message.
func repoError(err error, notFoundMsg, conflictMsg string) *echo.HTTPError {
	switch {
	case isNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case isConflict(err):
		return echo.NewHTTPError(http.StatusConflict, conflictMsg)
	case isInvalidID(err):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID format")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func isNotFound(err error) bool  { return errors.Is(err, repositories.ErrNotFound) }
func isConflict(err error) bool  { return errors.Is(err, repositories.ErrConflict) }
func isInvalidID(err error) bool { return errors.Is(err, primitive.ErrInvalidHex) }
