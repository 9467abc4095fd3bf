package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sweetshop/apperr"
	"sweetshop/models"
)

func TestAllow(t *testing.T) {
	anon := (*models.User)(nil)
	user := &models.User{IsActive: true}
	admin := &models.User{IsAdmin: true, IsActive: true}
	inactiveUser := &models.User{}
	inactiveAdmin := &models.User{IsAdmin: true}

	tests := []struct {
		name   string
		caller *models.User
		op     Operation
		want   error
	}{
		{"anonymous can read sweets", anon, ReadSweets, nil},
		{"anonymous can register", anon, RegisterUser, nil},
		{"anonymous cannot purchase", anon, PurchaseSweet, apperr.ErrUnauthorized},
		{"anonymous cannot manage sweets", anon, ManageSweets, apperr.ErrUnauthorized},

		{"user can read sweets", user, ReadSweets, nil},
		{"user can purchase", user, PurchaseSweet, nil},
		{"user can read self", user, ReadSelf, nil},
		{"user can update self", user, UpdateSelf, nil},
		{"user cannot manage sweets", user, ManageSweets, apperr.ErrForbidden},
		{"user cannot restock", user, RestockSweet, apperr.ErrForbidden},
		{"user cannot manage users", user, ManageUsers, apperr.ErrForbidden},
		{"user cannot manage images", user, ManageImages, apperr.ErrForbidden},

		{"admin can manage sweets", admin, ManageSweets, nil},
		{"admin can restock", admin, RestockSweet, nil},
		{"admin can manage users", admin, ManageUsers, nil},
		{"admin can manage images", admin, ManageImages, nil},
		{"admin can purchase", admin, PurchaseSweet, nil},

		{"inactive user denied purchase", inactiveUser, PurchaseSweet, apperr.ErrInactive},
		{"inactive user denied self read", inactiveUser, ReadSelf, apperr.ErrInactive},
		{"inactive admin denied restock", inactiveAdmin, RestockSweet, apperr.ErrInactive},
		{"inactive admin denied user management", inactiveAdmin, ManageUsers, apperr.ErrInactive},
		{"inactive user can still read sweets", inactiveUser, ReadSweets, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allow(tt.caller, tt.op)
			if tt.want == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}
