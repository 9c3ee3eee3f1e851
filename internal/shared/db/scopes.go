package db

import (
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/shared/query"
)

// NotSoftDeleted filters rows flagged with deleted = true. Labels and milestones are
// soft-deleted with a boolean flag so historical events keep resolving them.
func NotSoftDeleted(alias string) func(db *gorm.DB) *gorm.DB {
	col := "deleted"
	if alias != "" {
		col = alias + ".deleted"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(col+" = ?", false)
	}
}

// Paginate applies offset/limit from a page filter.
func Paginate(f query.PageFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(f.Offset()).Limit(f.Limit())
	}
}
