package controllers

import (
	"time"

	"sweetshop/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type RegisterPayload struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserUpdatePayload is a patch: only fields present in the body are
// applied, absent fields leave the record untouched.
type UserUpdatePayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
	IsActive *bool   `json:"is_active"`
}

// SelfUpdatePayload is the patch a user may apply to their own
// record; the admin and active flags are not self-service.
type SelfUpdatePayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

type UserResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		IsActive: user.IsActive,
	}
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type SweetCreatePayload struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"gte=0"`
	QuantityInStock int     `json:"quantity_in_stock" binding:"gte=0"`
}

type SweetUpdatePayload struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	QuantityInStock *int     `json:"quantity_in_stock" binding:"omitempty,gte=0"`
}

type SweetResponse struct {
	SweetID         uint    `json:"sweet_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	QuantityInStock int     `json:"quantity_in_stock"`
	ImageURL        string  `json:"image_url,omitempty"`
}

func NewSweetResponse(sweet models.Sweet) SweetResponse {
	return SweetResponse{
		SweetID:         sweet.ID,
		Name:            sweet.Name,
		Category:        sweet.Category,
		Description:     sweet.Description,
		Price:           sweet.Price,
		QuantityInStock: sweet.QuantityInStock,
		ImageURL:        sweet.ImageURL,
	}
}

// QuantityPayload deliberately has no required binding: a missing or
// zero quantity falls through to the ledger's own range check so the
// caller gets the business-rule error, not a binding one.
type QuantityPayload struct {
	Quantity int `json:"quantity"`
}

type InventoryResponse struct {
	TransactionID   uint      `json:"transaction_id"`
	SweetID         uint      `json:"sweet_id"`
	UserID          *uint     `json:"user_id"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	PriceAtTime     float64   `json:"price_at_time"`
	NewStock        int       `json:"new_stock"`
	CreatedAt       time.Time `json:"created_at"`
	Message         string    `json:"message"`
}

type TransactionResponse struct {
	TransactionID   uint      `json:"transaction_id"`
	SweetID         uint      `json:"sweet_id"`
	UserID          *uint     `json:"user_id"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	PriceAtTime     float64   `json:"price_at_time"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewTransactionResponse(entry models.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   entry.ID,
		SweetID:         entry.SweetID,
		UserID:          entry.UserID,
		TransactionType: entry.Type,
		Quantity:        entry.Quantity,
		PriceAtTime:     entry.PriceAtTime,
		CreatedAt:       entry.CreatedAt,
	}
}
