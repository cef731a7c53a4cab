package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-leavehub/internal/domain"
	"go-leavehub/internal/leave"
	leaveerrors "go-leavehub/internal/leave/errors"
)

type fakeService struct {
	createFn   func(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	decideFn   func(ctx context.Context, cmd leave.DecisionCommand) (leave.LeaveRequestResponse, error)
	getByIDFn  func(ctx context.Context, id string) (leave.LeaveRequestResponse, error)
	listFn     func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequestResponse, int64, error)
	pendingFn  func(ctx context.Context, managerEmployeeID string) ([]leave.LeaveRequestResponse, error)
	balancesFn func(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error)
}

func (f *fakeService) Create(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return f.createFn(ctx, employeeID, req)
}
func (f *fakeService) Decide(ctx context.Context, cmd leave.DecisionCommand) (leave.LeaveRequestResponse, error) {
	return f.decideFn(ctx, cmd)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequestResponse, int64, error) {
	return f.listFn(ctx, filter)
}
func (f *fakeService) ListPendingForManager(ctx context.Context, managerEmployeeID string) ([]leave.LeaveRequestResponse, error) {
	return f.pendingFn(ctx, managerEmployeeID)
}
func (f *fakeService) Balances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	return f.balancesFn(ctx, employeeID, year)
}

func TestHandler_CreateAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		createFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "2024-03-10", req.StartDate)
			return leave.LeaveRequestResponse{
				ID:         uuid.New().String(),
				EmployeeID: eid,
				Status:     leave.StatusPendingManager,
			}, nil
		},
		listFn: func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequestResponse, int64, error) {
			// employee role is pinned to their own requests
			assert.Equal(t, employeeID, filter.EmployeeID)
			return []leave.LeaveRequestResponse{{ID: uuid.New().String()}}, 1, nil
		},
	}
	h := leave.NewHandler(svc)

	body := `{"leave_type_id":"` + uuid.New().String() + `","start_date":"2024-03-10","end_date":"2024-03-14"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Set("role", domain.RoleEmployee)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), leave.StatusPendingManager)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("employee_id", employeeID)
	c2.Set("role", domain.RoleEmployee)
	c2.Request = httptest.NewRequest(http.MethodGet, "/leave-requests?page=1&page_size=10", nil)
	h.List(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_Create_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{"start_date":"2024-03-10"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_DecideRoutesActionAndNote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	managerID := uuid.New().String()
	requestID := uuid.New().String()

	var got leave.DecisionCommand
	svc := &fakeService{
		decideFn: func(ctx context.Context, cmd leave.DecisionCommand) (leave.LeaveRequestResponse, error) {
			got = cmd
			return leave.LeaveRequestResponse{ID: cmd.RequestID, Status: leave.StatusPendingHR}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", managerID)
	c.Set("role", domain.RoleManager)
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/"+requestID+"/manager-approve", strings.NewReader(`{"note":"ok"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ManagerApprove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, requestID, got.RequestID)
	assert.Equal(t, managerID, got.ActorEmployeeID)
	assert.Equal(t, leave.ActionManagerApprove, got.Action)
	assert.Equal(t, "ok", got.Note)
}

func TestHandler_Decide_ConflictPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		decideFn: func(ctx context.Context, cmd leave.DecisionCommand) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leaveerrors.InvalidTransition(string(cmd.Action), leave.StatusRejected)
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Set("role", domain.RoleEmployee)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/cancel", nil)
	h.Cancel(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), leave.StatusRejected)
}

func TestHandler_GetById_HidesOthersFromEmployees(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ownerID := uuid.New().String()

	svc := &fakeService{
		getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{ID: id, EmployeeID: ownerID}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Set("role", domain.RoleEmployee)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests/x", nil)
	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Balances(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		balancesFn: func(ctx context.Context, eid string, year int) ([]leave.BalanceResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 2024, year)
			return []leave.BalanceResponse{{
				LeaveTypeCode: "AL",
				Year:          2024,
				Opening:       "0.0",
				Used:          "5.0",
				Remaining:     "16.0",
			}}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Set("role", domain.RoleEmployee)
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-balances?year=2024", nil)
	h.Balances(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"remaining\":\"16.0\"")
}

func TestHandler_Balances_ForbiddenForOtherEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Set("role", domain.RoleEmployee)
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-balances?year=2024&employee_id="+uuid.New().String(), nil)
	h.Balances(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_Balances_MissingYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Set("role", domain.RoleEmployee)
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-balances", nil)
	h.Balances(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
