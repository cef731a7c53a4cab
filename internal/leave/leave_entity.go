package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_type"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text"`

	Status string `gorm:"type:varchar(20);not null;index:idx_leave_requests_status"`

	// Decision metadata per stage; exactly one pair is populated for
	// each stage the request actually traversed
	ManagerDecidedBy    *uuid.UUID `gorm:"type:uuid"`
	ManagerDecidedAt    *time.Time
	ManagerDecisionNote *string `gorm:"type:text"`

	HRDecidedBy    *uuid.UUID `gorm:"type:uuid"`
	HRDecidedAt    *time.Time
	HRDecisionNote *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// TotalDays is the inclusive day count of the request range.
func (l LeaveRequest) TotalDays() int {
	return inclusiveDays(l.StartDate, l.EndDate)
}

func inclusiveDays(start, end time.Time) int {
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
