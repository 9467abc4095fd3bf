package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sweetshop/token"
)

func dbMock(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	return sqldb, gormdb, mock
}

func testHandler(db *gorm.DB) *Handler {
	return NewHandler(db, token.NewMaker("test-secret", time.Hour), nil, zap.NewNop())
}

// bcrypt hash of "admin", cost 14.
const adminHash = "$2a$14$3S5a3omnocQh0KqgOBjjh.dA/TdNRUnaETsLV5PqjrJ/Gs757i8NS"

func userColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at",
		"username", "email", "password", "is_admin", "is_active"}
}

func sweetColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at",
		"name", "category", "description", "price", "quantity_in_stock",
		"image_url", "image_file_id"}
}

func testContext(t *testing.T, method string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, "/", reader)
	if err != nil {
		t.Fatal(err)
	}
	c.Request = req
	return c, w
}
