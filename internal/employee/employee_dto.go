package employee

import "time"

type CreateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	EmployeeNumber   string  `json:"employee_number"`
	Phone            string  `json:"phone"`
	HireDate         string  `json:"hire_date" binding:"required"`
	ManagerID        *string `json:"manager_id"`
	EmploymentStatus string  `json:"employment_status" binding:"omitempty,oneof=ACTIVE INACTIVE PROBATION"`
}

type UpdateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Phone            string  `json:"phone"`
	ManagerID        *string `json:"manager_id"`
	EmploymentStatus string  `json:"employment_status" binding:"omitempty,oneof=ACTIVE INACTIVE PROBATION"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	EmployeeNumber   string  `json:"employee_number"`
	Phone            string  `json:"phone,omitempty"`
	HireDate         string  `json:"hire_date"`
	ManagerID        *string `json:"manager_id,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               empl.ID.String(),
		FullName:         empl.FullName,
		Email:            empl.Email,
		EmployeeNumber:   empl.EmployeeNumber,
		Phone:            empl.Phone,
		HireDate:         empl.HireDate.Format("2006-01-02"),
		EmploymentStatus: empl.EmploymentStatus,
	}
	if empl.ManagerID != nil {
		v := empl.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		resp[i] = mapToResponse(e)
	}
	return resp
}

func parseHireDate(v string) (time.Time, error) {
	return time.Parse("2006-01-02", v)
}
