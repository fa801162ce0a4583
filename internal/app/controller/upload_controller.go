package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendora/trendora-backend/internal/errors"
	"github.com/trendora/trendora-backend/internal/middleware"
	"github.com/trendora/trendora-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{storage: storage}
}

type presignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size"`
	Folder      string `json:"folder"` // defaults to "products"
}

// GeneratePresignedURL issues a short-lived S3 PUT URL for catalog imagery.
// Admin only; the binary never passes through this service.
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "filename and content_type are required")
		return
	}

	if err := storage.ValidateImageContentType(req.ContentType); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		errors.BadRequest(c, errors.UploadInvalidFileType, "Only JPEG, PNG, GIF and WEBP images are allowed")
		return
	}
	if req.Size > 0 {
		if err := storage.ValidateImageSize(req.Size); err != nil {
			errors.BadRequest(c, errors.UploadInvalidFileType, "Image exceeds the maximum upload size")
			return
		}
	}

	folder := req.Folder
	if folder == "" {
		folder = "products"
	}

	upload, err := ctrl.storage.PresignImageUpload(c.Request.Context(), req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to presign upload", err, map[string]interface{}{
			"filename": req.Filename,
			"folder":   folder,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "Failed to generate upload URL")
		return
	}

	log.Info("Presigned upload issued", map[string]interface{}{
		"key":    upload.Key,
		"folder": folder,
	})
	c.JSON(http.StatusOK, upload)
}
