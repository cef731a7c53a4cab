package leavetype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeaveType struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Code               string           `gorm:"type:varchar(20);uniqueIndex:uq_leave_type_code"`
	Name               string           `gorm:"type:varchar(50);not null;uniqueIndex:uq_leave_type_name"`
	IsPaid             bool             `gorm:"not null;default:true"`
	RequiresAttachment bool             `gorm:"not null;default:false"`
	IsActive           bool             `gorm:"not null;default:true;index:idx_leave_types_active"`
	AnnualQuota        decimal.Decimal  `gorm:"type:numeric(5,2);not null;default:0"`
	AllowCarryOver     bool             `gorm:"not null;default:false"`
	MaxCarryOver       *decimal.Decimal `gorm:"type:numeric(5,2)"` // nil = unlimited carry-over

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}
