package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sweetshop/apperr"
	"sweetshop/models"
)

// Register creates a regular user account. Open to unauthenticated
// callers.
func (h *Handler) Register(c *gin.Context) {
	var payload RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.createUser(payload.Username, payload.Email, payload.Password, false, true)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewUserResponse(*user))
}

// createUser enforces the uniqueness pre-checks and hashes the
// password. The unique indexes remain the authoritative guard: a
// concurrent insert racing past the pre-check still surfaces as a
// conflict through FromDB.
func (h *Handler) createUser(username, email, password string, isAdmin, isActive bool) (*models.User, error) {
	if _, err := models.GetUserByUsername(h.DB, username); err == nil {
		return nil, apperr.Conflict("Username already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}
	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}

	hashed, err := models.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	user := models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		IsAdmin:  isAdmin,
		IsActive: isActive,
	}
	// The default:true tag makes gorm drop a false is_active from the
	// insert, so the column list is forced explicitly.
	err = h.DB.Select("Username", "Email", "Password", "IsAdmin", "IsActive", "CreatedAt", "UpdatedAt").
		Create(&user).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Username or email already registered")
	}
	return &user, nil
}

// authenticate verifies the credential pair. It does not reveal which
// half was wrong.
func (h *Handler) authenticate(c *gin.Context, username, password string) (models.User, bool) {
	user, err := models.GetUserByUsername(h.DB, username)
	if err != nil || !user.ValidatePassword(password) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Incorrect username or password"})
		c.Abort()
		return models.User{}, false
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account is inactive"})
		c.Abort()
		return models.User{}, false
	}
	return user, true
}

// Login authenticates a JSON credential pair and returns a bearer
// token together with the user record.
func (h *Handler) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	user, ok := h.authenticate(c, payload.Username, payload.Password)
	if !ok {
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

type tokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Token is the form-encoded login variant.
func (h *Handler) Token(c *gin.Context) {
	var form tokenForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	user, ok := h.authenticate(c, form.Username, form.Password)
	if !ok {
		return
	}
	signed, err := h.Tokens.Generate(user)
	if err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated caller's own record.
func (h *Handler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.respondError(c, apperr.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(user))
}

// UpdateMe applies a self-service patch to the caller's own record.
// The admin and active flags are not reachable from here.
func (h *Handler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.respondError(c, apperr.ErrUnauthorized)
		return
	}
	var payload SelfUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.applyUserPatch(&user, payload.Username, payload.Email, payload.Password); err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.DB.Save(&user).Error; err != nil {
		h.respondError(c, apperr.FromDB(err, "Username or email already registered"))
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(user))
}
