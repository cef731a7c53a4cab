package leavetype

type CreateLeaveTypeRequest struct {
	Code               string  `json:"code" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	IsPaid             *bool   `json:"is_paid"`
	RequiresAttachment bool    `json:"requires_attachment"`
	AnnualQuota        string  `json:"annual_quota" binding:"required"`
	AllowCarryOver     bool    `json:"allow_carry_over"`
	MaxCarryOver       *string `json:"max_carry_over"`
}

type UpdateLeaveTypeRequest struct {
	Name               string  `json:"name" binding:"required"`
	IsPaid             *bool   `json:"is_paid"`
	RequiresAttachment bool    `json:"requires_attachment"`
	AnnualQuota        string  `json:"annual_quota" binding:"required"`
	AllowCarryOver     bool    `json:"allow_carry_over"`
	MaxCarryOver       *string `json:"max_carry_over"`
}

type LeaveTypeResponse struct {
	ID                 string  `json:"id"`
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	IsPaid             bool    `json:"is_paid"`
	RequiresAttachment bool    `json:"requires_attachment"`
	IsActive           bool    `json:"is_active"`
	AnnualQuota        string  `json:"annual_quota"`
	AllowCarryOver     bool    `json:"allow_carry_over"`
	MaxCarryOver       *string `json:"max_carry_over,omitempty"`
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:                 lt.ID.String(),
		Code:               lt.Code,
		Name:               lt.Name,
		IsPaid:             lt.IsPaid,
		RequiresAttachment: lt.RequiresAttachment,
		IsActive:           lt.IsActive,
		AnnualQuota:        lt.AnnualQuota.StringFixed(1),
		AllowCarryOver:     lt.AllowCarryOver,
	}
	if lt.MaxCarryOver != nil {
		v := lt.MaxCarryOver.StringFixed(1)
		resp.MaxCarryOver = &v
	}
	return resp
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
