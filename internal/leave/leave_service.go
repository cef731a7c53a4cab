package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"go-leavehub/internal/audit"
	"go-leavehub/internal/domain"
	"go-leavehub/internal/employee"
	"go-leavehub/internal/events"
	leaveerrors "go-leavehub/internal/leave/errors"
	"go-leavehub/internal/leavetype"
	leavetypeerrors "go-leavehub/internal/leavetype/errors"
	"go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/shared/contextutil"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, cmd DecisionCommand) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequestResponse, int64, error)
	ListPendingForManager(ctx context.Context, managerEmployeeID string) ([]LeaveRequestResponse, error)
	Balances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	types     leavetype.Repository
	directory employee.Directory
	outbox    kafka.OutboxRepository
	sink      audit.Recorder
	cache     *BalanceCache
	group     singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types leavetype.Repository,
	directory employee.Directory,
	outboxRepo kafka.OutboxRepository,
	sink audit.Recorder,
	cache *BalanceCache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		types:     types,
		directory: directory,
		outbox:    outboxRepo,
		sink:      sink,
		cache:     cache,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave invalid range",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	entry, err := s.directory.Get(ctx, employeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lt, err := s.findLeaveType(ctx, req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !lt.IsActive {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeInactive
	}

	active, err := s.repo.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("create leave load active requests failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	if HasBlockingOverlap(start, end, active) {
		s.logger.Warn("create leave overlap rejected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	request := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  entry.ID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		Status:      InitialStatus(entry.ManagerID != nil),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, request); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, rid, request, lt.Code, events.LeaveRequestCreated); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	request.CreatedAt = now
	request.UpdatedAt = now

	s.record(ctx, employeeID, "leave_request_created", request, map[string]any{
		"leave_type_code": lt.Code,
		"start_date":      req.StartDate,
		"end_date":        req.EndDate,
		"status":          request.Status,
	})

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", request.ID.String()),
		zap.String("status", request.Status),
	)
	return mapToResponse(*request), nil
}

// Decide applies one workflow action under an exclusive row lock. The
// lock, the status write and the outbox event share one transaction;
// an illegal transition rolls back without writing anything.
func (s *service) Decide(ctx context.Context, cmd DecisionCommand) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave request",
		zap.String("request_id", rid),
		zap.String("leave_request_id", cmd.RequestID),
		zap.String("action", string(cmd.Action)),
	)

	if _, err := uuid.Parse(cmd.RequestID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
	}
	actorID, err := uuid.Parse(cmd.ActorEmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.LockByID(ctx, cmd.RequestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		s.logger.Error("decide lock failed",
			zap.String("leave_request_id", cmd.RequestID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	caps, err := s.resolveCapabilities(ctx, actorID, cmd.ActorRole, request)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	next, err := NextStatus(request.Status, cmd.Action, caps)
	if err != nil {
		s.logger.Warn("decide transition rejected",
			zap.String("leave_request_id", cmd.RequestID),
			zap.String("action", string(cmd.Action)),
			zap.String("current_status", request.Status),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	applyDecision(request, cmd.Action, actorID, cmd.Note, next)

	if err := qtx.UpdateDecision(ctx, request); err != nil {
		s.logger.Error("decide persist failed",
			zap.String("leave_request_id", cmd.RequestID),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	lt, err := s.findLeaveType(ctx, request.LeaveTypeID.String())
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, rid, request, lt.Code, eventTypeFor(cmd.Action)); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.record(ctx, cmd.ActorEmployeeID, "leave_request_"+string(cmd.Action), request, map[string]any{
		"leave_type_code": lt.Code,
		"status":          request.Status,
		"note":            cmd.Note,
	})

	if request.Status == StatusApproved {
		s.invalidateBalances(ctx, request)
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", request.ID.String()),
		zap.String("action", string(cmd.Action)),
		zap.String("status", request.Status),
	)
	return mapToResponse(*request), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*request), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]LeaveRequestResponse, int64, error) {
	reqs, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(reqs), total, nil
}

func (s *service) ListPendingForManager(ctx context.Context, managerEmployeeID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(managerEmployeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	reqs, err := s.repo.FindPendingManagerByManager(ctx, managerEmployeeID)
	if err != nil {
		s.logger.Error("list pending for manager failed",
			zap.String("manager_id", managerEmployeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(reqs), nil
}

// Balances computes the per-type balance sheet for one employee and
// year. Results come from Redis when present; misses collapse into a
// single computation per key via singleflight.
func (s *service) Balances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	if year <= 0 {
		return nil, leaveerrors.ErrInvalidYear
	}

	entry, err := s.directory.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	hireYear := entry.HireDate.Year()
	if year < hireYear {
		return []BalanceResponse{}, nil
	}

	if cached, ok := s.cache.Get(ctx, employeeID, year); ok {
		return cached, nil
	}

	result, err, _ := s.group.Do(balanceKey(employeeID, year), func() (any, error) {
		balances, err := s.computeBalances(ctx, employeeID, hireYear, year)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, employeeID, year, balances)
		return balances, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]BalanceResponse), nil
}

func (s *service) computeBalances(ctx context.Context, employeeID string, hireYear, year int) ([]BalanceResponse, error) {
	types, err := s.types.FindActive(ctx)
	if err != nil {
		s.logger.Error("balance load leave types failed", zap.Error(err))
		return nil, err
	}

	from := time.Date(hireYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	balances := make([]BalanceResponse, 0, len(types))
	for _, lt := range types {
		approved, err := s.repo.FindApprovedInRange(ctx, employeeID, lt.ID.String(), from, to)
		if err != nil {
			s.logger.Error("balance load approved requests failed",
				zap.String("employee_id", employeeID),
				zap.String("leave_type_id", lt.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}

		b := ComputeBalance(lt, hireYear, year, approved)
		balances = append(balances, BalanceResponse{
			LeaveTypeID:   lt.ID.String(),
			LeaveTypeCode: lt.Code,
			LeaveTypeName: lt.Name,
			Year:          year,
			Opening:       b.Opening.StringFixed(1),
			Used:          b.Used.StringFixed(1),
			Remaining:     b.Remaining.StringFixed(1),
		})
	}
	return balances, nil
}

// resolveCapabilities derives the actor's capability set for one
// request: ownership by identity, the manager capability from the
// directory's manager link, the HR capability from the role claim.
func (s *service) resolveCapabilities(ctx context.Context, actorID uuid.UUID, role string, request *LeaveRequest) (CapabilitySet, error) {
	caps := CapabilitySet{}

	if actorID == request.EmployeeID {
		caps[CapOwner] = true
	}

	if role == domain.RoleHRManager || role == domain.RoleSystemAdmin {
		caps[CapHRDecision] = true
	}

	entry, err := s.directory.Get(ctx, request.EmployeeID.String())
	if err != nil {
		return nil, err
	}
	if entry.ManagerID != nil && *entry.ManagerID == actorID {
		caps[CapManagerDecision] = true
	}

	return caps, nil
}

func applyDecision(request *LeaveRequest, action Action, actorID uuid.UUID, note string, next string) {
	now := time.Now().UTC()

	switch action {
	case ActionManagerApprove, ActionManagerReject:
		request.ManagerDecidedBy = &actorID
		request.ManagerDecidedAt = &now
		if note != "" {
			request.ManagerDecisionNote = &note
		}
	case ActionHRApprove, ActionHRReject:
		request.HRDecidedBy = &actorID
		request.HRDecidedAt = &now
		if note != "" {
			request.HRDecisionNote = &note
		}
	}

	request.Status = next
	request.UpdatedAt = now
}

func eventTypeFor(action Action) string {
	switch action {
	case ActionManagerApprove:
		return events.LeaveRequestApprovedManager
	case ActionManagerReject:
		return events.LeaveRequestRejectedManager
	case ActionHRApprove:
		return events.LeaveRequestApprovedHR
	case ActionHRReject:
		return events.LeaveRequestRejectedHR
	case ActionCancel:
		return events.LeaveRequestCancelled
	}
	return ""
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, rid string, request *LeaveRequest, typeCode, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveRequestEvent{
		EventType:      eventType,
		RequestID:      rid,
		LeaveRequestID: request.ID.String(),
		EmployeeID:     request.EmployeeID.String(),
		LeaveTypeCode:  typeCode,
		Status:         request.Status,
		OccurredAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   request.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveRequestTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("enqueue outbox event failed",
			zap.String("leave_request_id", request.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) record(ctx context.Context, actorID, action string, request *LeaveRequest, metadata map[string]any) {
	if s.sink == nil {
		return
	}
	s.sink.Record(ctx, actorID, action, "leave_request", request.ID.String(), metadata)
}

// invalidateBalances drops the cached sheets for every year the
// approved range touches plus the following year, whose opening may
// shift through carry-over. Later years age out via TTL.
func (s *service) invalidateBalances(ctx context.Context, request *LeaveRequest) {
	years := make([]int, 0, 3)
	for y := request.StartDate.Year(); y <= request.EndDate.Year()+1; y++ {
		years = append(years, y)
	}
	s.cache.Invalidate(ctx, request.EmployeeID.String(), years...)
}

func (s *service) findLeaveType(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.types.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return nil, err
	}
	return lt, nil
}

func parseDateRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, rawStart, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.ParseInLocation(dateLayout, rawEnd, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}
