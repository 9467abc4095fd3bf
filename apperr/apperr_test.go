package apperr

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, FromDB(nil, ""))
	})

	t.Run("record not found maps to NotFound", func(t *testing.T) {
		err := FromDB(gorm.ErrRecordNotFound, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate key maps to Conflict with the given message", func(t *testing.T) {
		for _, cause := range []error{
			gorm.ErrDuplicatedKey,
			&pgconn.PgError{Code: "23505"},
		} {
			err := FromDB(cause, "Username already registered")
			var conflict *ConflictError
			if assert.ErrorAs(t, err, &conflict) {
				assert.Equal(t, "Username already registered", conflict.Msg)
			}
		}
	})

	t.Run("check violation maps to Validation", func(t *testing.T) {
		for _, cause := range []error{
			gorm.ErrCheckConstraintViolated,
			&pgconn.PgError{Code: "23514"},
		} {
			err := FromDB(cause, "")
			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
		}
	})

	t.Run("anything else maps to Internal and keeps the cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := FromDB(cause, "")
		var internal *InternalError
		if assert.ErrorAs(t, err, &internal) {
			assert.ErrorIs(t, internal, cause)
		}
	})
}

func TestInsufficientStockMessage(t *testing.T) {
	err := &InsufficientStockError{Available: 3, Requested: 10}
	assert.Equal(t, "Insufficient stock: 3 available, 10 requested", err.Error())
}
