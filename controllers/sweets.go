package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sweetshop/apperr"
	"sweetshop/models"
)

// CreateSweet adds a new product record. Admin only.
func (h *Handler) CreateSweet(c *gin.Context) {
	var payload SweetCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	var existing models.Sweet
	err := h.DB.Where("name = ?", payload.Name).First(&existing).Error
	if err == nil {
		h.respondError(c, apperr.Conflict("Sweet with this name already exists"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.respondError(c, apperr.Internal(err))
		return
	}

	sweet := models.Sweet{
		Name:            payload.Name,
		Category:        payload.Category,
		Description:     payload.Description,
		Price:           payload.Price,
		QuantityInStock: payload.QuantityInStock,
	}
	if err := h.DB.Create(&sweet).Error; err != nil {
		h.respondError(c, apperr.FromDB(err, "Sweet with this name already exists"))
		return
	}
	c.JSON(http.StatusCreated, NewSweetResponse(sweet))
}

func (h *Handler) findSweets(c *gin.Context, filter models.SweetFilter) ([]SweetResponse, bool) {
	var sweets []models.Sweet
	if err := h.DB.Scopes(filter.Scope).Order("id").Find(&sweets).Error; err != nil {
		h.respondError(c, apperr.Internal(err))
		return nil, false
	}
	out := make([]SweetResponse, 0, len(sweets))
	for _, s := range sweets {
		out = append(out, NewSweetResponse(s))
	}
	return out, true
}

// ListSweets returns a page of sweets. Public.
func (h *Handler) ListSweets(c *gin.Context) {
	offset, limit := pagination(c)
	out, ok := h.findSweets(c, models.SweetFilter{Offset: offset, Limit: limit})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

// SearchSweets filters by name, category and price range; the
// filters compose with AND. Public.
func (h *Handler) SearchSweets(c *gin.Context) {
	filter := models.SweetFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	offset, limit := pagination(c)
	filter.Offset = offset
	filter.Limit = limit

	for _, bound := range []struct {
		param string
		dst   **float64
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
	} {
		if raw := c.Query(bound.param); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				h.respondError(c, apperr.Validation("invalid %s %q", bound.param, raw))
				return
			}
			*bound.dst = &v
		}
	}

	out, ok := h.findSweets(c, filter)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

// SweetsByCategory returns all sweets whose category matches,
// case-insensitively. Public.
func (h *Handler) SweetsByCategory(c *gin.Context) {
	var sweets []models.Sweet
	err := h.DB.Where("category ILIKE ?", c.Param("category")).Order("id").Find(&sweets).Error
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	if len(sweets) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No sweets found in this category"})
		return
	}
	out := make([]SweetResponse, 0, len(sweets))
	for _, s := range sweets {
		out = append(out, NewSweetResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// GetSweet returns one sweet by id. Public.
func (h *Handler) GetSweet(c *gin.Context) {
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
	c.JSON(http.StatusOK, NewSweetResponse(sweet))
}

// UpdateSweet applies an admin patch. Only present fields change.
func (h *Handler) UpdateSweet(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var payload SweetUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	sweet, err := models.GetSweetByID(h.DB, id)
	if err != nil {
		h.respondError(c, apperr.FromDB(err, ""))
		return
	}

	if payload.Name != nil && *payload.Name != sweet.Name {
		var existing models.Sweet
		err := h.DB.Where("name = ? AND id <> ?", *payload.Name, sweet.ID).First(&existing).Error
		if err == nil {
			h.respondError(c, apperr.Conflict("Sweet with this name already exists"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.respondError(c, apperr.Internal(err))
			return
		}
		sweet.Name = *payload.Name
	}
	if payload.Category != nil {
		sweet.Category = *payload.Category
	}
	if payload.Description != nil {
		sweet.Description = *payload.Description
	}
	if payload.Price != nil {
		sweet.Price = *payload.Price
	}
	if payload.QuantityInStock != nil {
		sweet.QuantityInStock = *payload.QuantityInStock
	}

	if err := h.DB.Save(&sweet).Error; err != nil {
		h.respondError(c, apperr.FromDB(err, "Sweet with this name already exists"))
		return
	}
	c.JSON(http.StatusOK, NewSweetResponse(sweet))
}

// DeleteSweet removes the record, then makes a best-effort attempt to
// release the attached image asset. Asset failure never undoes the
// delete; it is logged and swallowed. Historical transactions are
// left in place.
func (h *Handler) DeleteSweet(c *gin.Context) {
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
	if err := h.DB.Delete(&sweet).Error; err != nil {
		h.respondError(c, apperr.Internal(err))
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
	c.Status(http.StatusNoContent)
}
