package models

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) (*sql.DB, *gorm.DB) {
	sqldb, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		DryRun: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return sqldb, gormdb
}

func buildQuery(t *testing.T, db *gorm.DB, filter SweetFilter) (string, []interface{}) {
	var sweets []Sweet
	tx := db.Scopes(filter.Scope).Find(&sweets)
	require.NoError(t, tx.Error)
	return tx.Statement.SQL.String(), tx.Statement.Vars
}

func TestSweetFilterComposesWithAND(t *testing.T) {
	sqldb, db := dryRunDB(t)
	defer sqldb.Close()

	minPrice, maxPrice := 3.00, 5.00
	query, vars := buildQuery(t, db, SweetFilter{
		Name:     "choc",
		Category: "Chocolate",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})

	assert.Contains(t, query, "name ILIKE")
	assert.Contains(t, query, "category ILIKE")
	assert.Contains(t, query, "price >=")
	assert.Contains(t, query, "price <=")
	assert.Contains(t, vars, "%choc%")
	assert.Contains(t, vars, "%Chocolate%")
	assert.Contains(t, vars, 3.00)
	assert.Contains(t, vars, 5.00)
}

func TestSweetFilterSkipsAbsentFields(t *testing.T) {
	sqldb, db := dryRunDB(t)
	defer sqldb.Close()

	query, _ := buildQuery(t, db, SweetFilter{Name: "gummy"})

	assert.Contains(t, query, "name ILIKE")
	assert.NotContains(t, query, "category")
	assert.NotContains(t, query, "price")
}

func TestSweetFilterClampsLimit(t *testing.T) {
	sqldb, db := dryRunDB(t)
	defer sqldb.Close()

	for _, limit := range []int{0, -5, 1000} {
		_, vars := buildQuery(t, db, SweetFilter{Limit: limit})
		assert.Contains(t, vars, MaxPageSize)
	}

	_, vars := buildQuery(t, db, SweetFilter{Limit: 10})
	assert.Contains(t, vars, 10)
}
