package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sweetshop/apperr"
	"sweetshop/assets"
	"sweetshop/models"
)

// UpdateSweetImage uploads a replacement image for a sweet. The old
// asset, if any, is released best-effort after the record points at
// the new one.
func (h *Handler) UpdateSweetImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if h.Assets == nil {
		h.respondError(c, apperr.Validation("image uploads are not configured"))
		return
	}
	sweet, err := models.GetSweetByID(h.DB, id)
	if err != nil {
		h.respondError(c, apperr.FromDB(err, ""))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, apperr.Validation("missing file field"))
		return
	}
	if file.Size > assets.MaxImageSize {
		h.respondError(c, apperr.Validation("file size too large, maximum is 5MB"))
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !assets.AllowedImageType(contentType) {
		h.respondError(c, apperr.Validation("invalid file type %q", contentType))
		return
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, assets.MaxImageSize))
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}

	uploaded, err := h.Assets.Upload(c.Request.Context(), file.Filename, data)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}

	oldFileID := sweet.ImageFileID
	updates := map[string]interface{}{
		"image_url":     uploaded.URL,
		"image_file_id": uploaded.FileID,
	}
	if err := h.DB.Model(&sweet).Updates(updates).Error; err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	sweet.ImageURL = uploaded.URL
	sweet.ImageFileID = uploaded.FileID

	if oldFileID != "" {
		if err := h.Assets.Delete(c.Request.Context(), oldFileID); err != nil {
			h.Log.Warn("could not delete replaced image asset",
				zap.Uint("sweet_id", sweet.ID),
				zap.String("file_id", oldFileID),
				zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, NewSweetResponse(sweet))
}

// DeleteSweetImage detaches the sweet's image. The asset delete is
// best-effort; the record is cleared regardless.
func (h *Handler) DeleteSweetImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	sweet, err := models.GetSweetByID(h.DB, id)
	if err != nil {
		h.respondError(c, apperr.FromDB(err, ""))
		return
	}
	if sweet.ImageFileID == "" && sweet.ImageURL == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sweet has no image"})
		return
	}

	if sweet.ImageFileID != "" && h.Assets != nil {
		if err := h.Assets.Delete(c.Request.Context(), sweet.ImageFileID); err != nil {
			h.Log.Warn("could not delete image asset",
				zap.Uint("sweet_id", sweet.ID),
				zap.String("file_id", sweet.ImageFileID),
				zap.Error(err))
		}
	}

	updates := map[string]interface{}{
		"image_url":     "",
		"image_file_id": "",
	}
	if err := h.DB.Model(&sweet).Updates(updates).Error; err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	c.Status(http.StatusNoContent)
}
