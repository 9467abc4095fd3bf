// Package policy is the authorization decision function over
// (caller, operation). It is pure: no storage access, no side
// effects; identity resolution happens upstream.
package policy

import (
	"sweetshop/apperr"
	"sweetshop/models"
)

type Operation int

const (
	// RegisterUser and ReadSweets are open to unauthenticated callers.
	RegisterUser Operation = iota
	ReadSweets

	// Any authenticated, active user.
	PurchaseSweet
	ReadSelf
	UpdateSelf

	// Admin only.
	ManageSweets
	RestockSweet
	ManageUsers
	ManageImages
)

// Allow decides whether caller may perform op. A nil caller is an
// unauthenticated request.
func Allow(caller *models.User, op Operation) error {
	switch op {
	case RegisterUser, ReadSweets:
		return nil
	}
	if caller == nil {
		return apperr.ErrUnauthorized
	}
	if !caller.IsActive {
		return apperr.ErrInactive
	}
	switch op {
	case PurchaseSweet, ReadSelf, UpdateSelf:
		return nil
	case ManageSweets, RestockSweet, ManageUsers, ManageImages:
		if !caller.IsAdmin {
			return apperr.ErrForbidden
		}
		return nil
	}
	return apperr.ErrForbidden
}
