package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/apperr"
)

type AdminRegisterPayload struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// RegisterAdmin creates an admin account. Only an existing admin may
// call this; the first admin is seeded at startup.
func (h *Handler) RegisterAdmin(c *gin.Context) {
	var payload AdminRegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	user, err := h.createUser(payload.Username, payload.Email, payload.Password, true, active)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewUserResponse(*user))
}

// AdminLogin authenticates like Login but only accepts admin
// accounts.
func (h *Handler) AdminLogin(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	user, ok := h.authenticate(c, payload.Username, payload.Password)
	if !ok {
		return
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not an admin account"})
		c.Abort()
		return
	}
	signed, err := h.Tokens.Generate(user)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		User:        NewUserResponse(user),
	})
}
