package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ManagerID        *uuid.UUID `gorm:"type:uuid;index:idx_employees_manager"`
	FullName         string     `gorm:"type:varchar(150);not null"`
	Email            string     `gorm:"type:varchar(150);uniqueIndex:uq_employee_email"`
	EmployeeNumber   string     `gorm:"type:varchar(20);uniqueIndex:uq_employee_number"`
	Phone            string     `gorm:"type:varchar(30)"`
	HireDate         time.Time  `gorm:"type:date;not null"`
	EmploymentStatus string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
