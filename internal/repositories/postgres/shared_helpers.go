package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// sortColumns whitelists the wire-format sort keys and maps them to columns.
// Anything outside the map falls back to created_at, which also closes the
// door on injection through sortBy.
var sortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"address":   "address",
	"role":      "role",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("%s %s", column, sortOrder)
}

func applyPagination(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}
