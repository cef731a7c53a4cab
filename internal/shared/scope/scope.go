package scope

import (
	"time"

	"gorm.io/gorm"
)

func ByEmployee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

func ByStatus(statuses ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(statuses) == 0 {
			return db
		}
		return db.Where("status IN ?", statuses)
	}
}

// DateOverlap matches rows whose [start_date, end_date] closed interval
// intersects [from, to]
func DateOverlap(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date <= ? AND end_date >= ?", to, from)
	}
}
