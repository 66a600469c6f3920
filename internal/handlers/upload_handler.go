package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	firebaseStorage "firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler streams multipart uploads to the external asset host (a
// Firebase Storage bucket) and returns the public URL.
type UploadHandler struct {
	storage *firebaseStorage.Client
	bucket  string
}

// NewUploadHandler creates a new UploadHandler. storage may be nil when no
// bucket is configured; uploads then return 503.
func NewUploadHandler(storage *firebaseStorage.Client, bucket string) *UploadHandler {
	return &UploadHandler{storage: storage, bucket: bucket}
}

// RegisterUploadRoutes registers the upload route
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.Upload)
}

// Upload accepts one multipart file under the "file" field
func (h *UploadHandler) Upload(c echo.Context) error {
	if h.storage == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Asset storage not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot read uploaded file")
	}
	defer src.Close()

	bucket, err := h.storage.Bucket(h.bucket)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	objectName := "uploads/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	ctx := c.Request().Context()

	writer := bucket.Object(objectName).NewWriter(ctx)
	writer.ContentType = fileHeader.Header.Get("Content-Type")
	if _, err := io.Copy(writer, src); err != nil {
		writer.Close()
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload to asset host failed")
	}
	if err := writer.Close(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload to asset host failed")
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", h.bucket, objectName)
	return respond(c, http.StatusCreated, echo.Map{
		"url":  url,
		"name": fileHeader.Filename,
		"size": fileHeader.Size,
	})
}
