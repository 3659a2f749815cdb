package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboarding-service/services"
)

type MediaHandler struct {
	media *services.MediaService
}

func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// PutMediaAssets lets a client upload media into their own folder.
func (h *MediaHandler) PutMediaAssets(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, clientSelf) {
		return
	}

	files, err := formFiles(c)
	if err != nil || len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files are required"})
		return
	}

	if err := h.media.UploadMediaAssets(c.Request.Context(), clientEmail, files); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetMediaAssets returns public URLs for the client's media, manager only.
func (h *MediaHandler) GetMediaAssets(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, managerOnly) {
		return
	}

	urls, err := h.media.ListMediaAssets(c.Request.Context(), clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_urls": urls})
}

// GetMediaAssetsZipped bundles the client's media into one ZIP, manager only.
func (h *MediaHandler) GetMediaAssetsZipped(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, managerOnly) {
		return
	}

	data, err := h.media.MediaAssetsZip(c.Request.Context(), clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/zip", data)
}
