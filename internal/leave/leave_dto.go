package leave

import "time"

const dateLayout = "2006-01-02"

type CreateLeaveRequestRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

type DecisionRequest struct {
	Note string `json:"note"`
}

// DecisionCommand bundles everything the service needs to resolve the
// actor's capabilities and apply one workflow action.
type DecisionCommand struct {
	RequestID       string
	ActorEmployeeID string
	ActorRole       string
	Action          Action
	Note            string
}

type DecisionResponse struct {
	DecidedBy string    `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
	Note      string    `json:"note,omitempty"`
}

type LeaveRequestResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TotalDays   int    `json:"total_days"`
	Reason      string `json:"reason,omitempty"`
	Status      string `json:"status"`

	ManagerDecision *DecisionResponse `json:"manager_decision,omitempty"`
	HRDecision      *DecisionResponse `json:"hr_decision,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BalanceResponse struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeCode string `json:"leave_type_code"`
	LeaveTypeName string `json:"leave_type_name"`
	Year          int    `json:"year"`
	Opening       string `json:"opening"`
	Used          string `json:"used"`
	Remaining     string `json:"remaining"`
}

func mapToResponse(req LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          req.ID.String(),
		EmployeeID:  req.EmployeeID.String(),
		LeaveTypeID: req.LeaveTypeID.String(),
		StartDate:   req.StartDate.Format(dateLayout),
		EndDate:     req.EndDate.Format(dateLayout),
		TotalDays:   req.TotalDays(),
		Reason:      req.Reason,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}

	if req.ManagerDecidedBy != nil && req.ManagerDecidedAt != nil {
		resp.ManagerDecision = &DecisionResponse{
			DecidedBy: req.ManagerDecidedBy.String(),
			DecidedAt: *req.ManagerDecidedAt,
		}
		if req.ManagerDecisionNote != nil {
			resp.ManagerDecision.Note = *req.ManagerDecisionNote
		}
	}
	if req.HRDecidedBy != nil && req.HRDecidedAt != nil {
		resp.HRDecision = &DecisionResponse{
			DecidedBy: req.HRDecidedBy.String(),
			DecidedAt: *req.HRDecidedAt,
		}
		if req.HRDecisionNote != nil {
			resp.HRDecision.Note = *req.HRDecisionNote
		}
	}

	return resp
}

func mapToListResponse(reqs []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(reqs))
	for i, req := range reqs {
		resp[i] = mapToResponse(req)
	}
	return resp
}
