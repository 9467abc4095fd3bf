package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sweetshop/assets"
	"sweetshop/models"
	"sweetshop/token"
)

// Handler carries the shared collaborators for all route handlers.
// The storage handle is injected here instead of living in a global.
type Handler struct {
	DB     *gorm.DB
	Tokens *token.Maker
	Assets assets.Store
	Log    *zap.Logger
}

func NewHandler(db *gorm.DB, tokens *token.Maker, store assets.Store, log *zap.Logger) *Handler {
	return &Handler{DB: db, Tokens: tokens, Assets: store, Log: log}
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get("current_user")
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
