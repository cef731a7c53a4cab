package events

import "time"

const LeaveRequestTopic = "hr.leave.lifecycle.v1"

// Event types emitted for each workflow transition of a leave request
const (
	LeaveRequestCreated         = "leave_request.created"
	LeaveRequestApprovedManager = "leave_request.approved_manager"
	LeaveRequestRejectedManager = "leave_request.rejected_manager"
	LeaveRequestApprovedHR      = "leave_request.approved_hr"
	LeaveRequestRejectedHR      = "leave_request.rejected_hr"
	LeaveRequestCancelled       = "leave_request.cancelled"
)

type LeaveRequestEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveTypeCode  string    `json:"leave_type_code"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
