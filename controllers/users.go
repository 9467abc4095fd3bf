package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sweetshop/apperr"
	"sweetshop/models"
)

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}
	return offset, limit
}

// ListUsers returns a page of user records. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	offset, limit := pagination(c)

	var users []models.User
	if err := h.DB.Offset(offset).Limit(limit).Order("id").Find(&users).Error; err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// GetUser returns one user by id. Admin only.
func (h *Handler) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	user, err := models.GetUserByID(h.DB, id)
	if err != nil {
		h.respondError(c, apperr.FromDB(err, ""))
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(user))
}

// applyUserPatch applies the present fields of a patch, re-checking
// uniqueness for username and email against other records.
func (h *Handler) applyUserPatch(user *models.User, username, email, password *string) error {
	if username != nil && *username != user.Username {
		var existing models.User
		err := h.DB.Where("username = ? AND id <> ?", *username, user.ID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("Username already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Internal(err)
		}
		user.Username = *username
	}
	if email != nil && *email != user.Email {
		var existing models.User
		err := h.DB.Where("email = ? AND id <> ?", *email, user.ID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("Email already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Internal(err)
		}
		user.Email = *email
	}
	if password != nil {
		hashed, err := models.HashPassword(*password)
		if err != nil {
			return apperr.Internal(err)
		}
		user.Password = hashed
	}
	return nil
}

// UpdateUser applies an admin patch to any user record.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var payload UserUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := models.GetUserByID(h.DB, id)
	if err != nil {
		h.respondError(c, apperr.FromDB(err, ""))
		return
	}
	if err := h.applyUserPatch(&user, payload.Username, payload.Email, payload.Password); err != nil {
		h.respondError(c, err)
		return
	}
	if payload.IsAdmin != nil {
		user.IsAdmin = *payload.IsAdmin
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if err := h.DB.Save(&user).Error; err != nil {
		h.respondError(c, apperr.FromDB(err, "Username or email already registered"))
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(user))
}

// DeleteUser removes a user record. Deleting an absent id is a plain
// not-found, also on repeat calls.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	user, err := models.GetUserByID(h.DB, id)
	if err != nil {
		h.respondError(c, apperr.FromDB(err, ""))
		return
	}
	if err := h.DB.Delete(&user).Error; err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	c.Status(http.StatusNoContent)
}
