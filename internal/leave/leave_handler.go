package leave

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-leavehub/internal/domain"
	leaveerrors "go-leavehub/internal/leave/errors"
	"go-leavehub/internal/shared/apperror"
	"go-leavehub/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func actorEmployeeID(c *gin.Context) string {
	return c.GetString("employee_id")
}

func isHRRole(role string) bool {
	return role == domain.RoleHRManager || role == domain.RoleSystemAdmin
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorEmployeeID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Employee biasa hanya boleh melihat pengajuannya sendiri
	role := c.GetString("role")
	if role == domain.RoleEmployee && resp.EmployeeID != actorEmployeeID(c) {
		h.writeServiceError(c, leaveerrors.ErrLeaveRequestNotFound)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := ListFilter{
		EmployeeID: c.Query("employee_id"),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := c.Query("status"); raw != "" {
		filter.Statuses = strings.Split(raw, ",")
	}

	if c.GetString("role") == domain.RoleEmployee {
		filter.EmployeeID = actorEmployeeID(c)
	}

	resp, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

// PendingApprovals lists the manager-stage queue of the calling
// manager's direct reports.
func (h *Handler) PendingApprovals(c *gin.Context) {
	resp, err := h.service.ListPendingForManager(c.Request.Context(), actorEmployeeID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ManagerApprove(c *gin.Context) { h.decide(c, ActionManagerApprove) }
func (h *Handler) ManagerReject(c *gin.Context)  { h.decide(c, ActionManagerReject) }
func (h *Handler) HRApprove(c *gin.Context)      { h.decide(c, ActionHRApprove) }
func (h *Handler) HRReject(c *gin.Context)       { h.decide(c, ActionHRReject) }
func (h *Handler) Cancel(c *gin.Context)         { h.decide(c, ActionCancel) }

func (h *Handler) decide(c *gin.Context, action Action) {
	var req DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http decide validation failed", zap.Error(err))
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
			return
		}
	}

	resp, err := h.service.Decide(c.Request.Context(), DecisionCommand{
		RequestID:       c.Param("id"),
		ActorEmployeeID: actorEmployeeID(c),
		ActorRole:       c.GetString("role"),
		Action:          action,
		Note:            req.Note,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Balances serves the per-type balance sheet. Without employee_id the
// caller gets their own sheet; reading someone else's requires an HR
// role.
func (h *Handler) Balances(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		employeeID = actorEmployeeID(c)
	}
	if employeeID != actorEmployeeID(c) && !isHRRole(c.GetString("role")) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"cannot read another employee's balance", nil)
		return
	}

	rawYear := c.Query("year")
	if rawYear == "" {
		h.writeServiceError(c, leaveerrors.ErrYearRequired)
		return
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		h.writeServiceError(c, leaveerrors.ErrInvalidYear)
		return
	}

	resp, err := h.service.Balances(c.Request.Context(), employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
