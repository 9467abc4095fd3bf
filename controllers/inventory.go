package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/apperr"
	"sweetshop/ledger"
	"sweetshop/models"
)

func newInventoryResponse(entry *models.Transaction, sweet *models.Sweet, verb string) InventoryResponse {
	return InventoryResponse{
		TransactionID:   entry.ID,
		SweetID:         entry.SweetID,
		UserID:          entry.UserID,
		TransactionType: entry.Type,
		Quantity:        entry.Quantity,
		PriceAtTime:     entry.PriceAtTime,
		NewStock:        sweet.QuantityInStock,
		CreatedAt:       entry.CreatedAt,
		Message:         fmt.Sprintf("Successfully %s %d x %s", verb, entry.Quantity, sweet.Name),
	}
}

// Purchase decrements stock for the authenticated caller through the
// ledger.
func (h *Handler) Purchase(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var payload QuantityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, ok := currentUser(c)
	if !ok {
		h.respondError(c, apperr.ErrUnauthorized)
		return
	}

	userID := user.ID
	entry, sweet, err := ledger.Purchase(h.DB, id, payload.Quantity, &userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newInventoryResponse(entry, sweet, "purchased"))
}

// Restock increments stock. Admin only.
func (h *Handler) Restock(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var payload QuantityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, ok := currentUser(c)
	if !ok {
		h.respondError(c, apperr.ErrUnauthorized)
		return
	}

	userID := user.ID
	entry, sweet, err := ledger.Restock(h.DB, id, payload.Quantity, &userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newInventoryResponse(entry, sweet, "restocked"))
}

// ListSweetTransactions returns the audit history for one sweet.
// Admin only.
func (h *Handler) ListSweetTransactions(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, err := models.GetSweetByID(h.DB, id); err != nil {
		h.respondError(c, apperr.FromDB(err, ""))
		return
	}

	offset, limit := pagination(c)
	var entries []models.Transaction
	err = h.DB.Where("sweet_id = ?", id).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	out := make([]TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewTransactionResponse(entry))
	}
	c.JSON(http.StatusOK, out)
}
