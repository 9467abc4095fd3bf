package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterAdmin(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()
	h := testHandler(db)

	// An inactive admin must come out of a single insert; a
	// create-then-flip would leave an active admin if the flip failed.
	t.Run("creates an inactive admin in one insert", func(t *testing.T) {
		mock.ExpectQuery(selectByUsernameSQL).
			WithArgs("root2", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(selectByEmailSQL).
			WithArgs("root2@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectBegin()
		mock.ExpectQuery(insertUserSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectCommit()

		c, w := testContext(t, http.MethodPost, map[string]interface{}{
			"username":  "root2",
			"email":     "root2@example.com",
			"password":  "password",
			"is_active": false})

		h.RegisterAdmin(c)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsAdmin)
		assert.False(t, resp.IsActive)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("defaults to an active admin", func(t *testing.T) {
		mock.ExpectQuery(selectByUsernameSQL).
			WithArgs("root3", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(selectByEmailSQL).
			WithArgs("root3@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectBegin()
		mock.ExpectQuery(insertUserSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
		mock.ExpectCommit()

		c, w := testContext(t, http.MethodPost, map[string]interface{}{
			"username": "root3",
			"email":    "root3@example.com",
			"password": "password"})

		h.RegisterAdmin(c)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsAdmin)
		assert.True(t, resp.IsActive)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
