package domain

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Role names issued in JWT claims and referenced by policies
const (
	RoleSystemAdmin = "SystemAdmin"
	RoleHRManager   = "HRManager"
	RoleManager     = "Manager"
	RoleEmployee    = "Employee"
)
