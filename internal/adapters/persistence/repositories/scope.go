package repositories

import (
	"errors"
	"time"

	"goldtrack/internal/core/domain"

	"gorm.io/gorm"
)

// scoped applies the caller's visibility to a query on a table with an
// employee_id column
func scoped(db *gorm.DB, scope domain.Scope) *gorm.DB {
	if scope.All {
		return db
	}
	return db.Where("employee_id = ?", scope.EmployeeID)
}

// between applies an inclusive date filter on column
func between(db *gorm.DB, column string, r domain.DateRange) *gorm.DB {
	if r.From != nil {
		db = db.Where(column+" >= ?", *r.From)
	}
	if r.To != nil {
		db = db.Where(column+" <= ?", *r.To)
	}
	return db
}

// translate maps gorm sentinel errors onto domain errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	}
	return err
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
