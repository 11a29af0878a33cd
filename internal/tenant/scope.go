package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope restricts a query to rows owned by one company. Every
// tenant-scoped repository applies it in the same statement as the id
// lookup, so rows from other tenants behave as if they do not exist.
func Scope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
