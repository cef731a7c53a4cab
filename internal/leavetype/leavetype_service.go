package leavetype

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leavehub/internal/audit"
	leavetypeerrors "go-leavehub/internal/leavetype/errors"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, includeInactive bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, actorID, id string) (LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	sink   audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, sink audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, sink: sink, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested", zap.String("code", req.Code))

	quota, maxCarryOver, err := parseQuotaFields(req.AnnualQuota, req.MaxCarryOver)
	if err != nil {
		s.logger.Warn("create leave type validation failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	lt := &LeaveType{
		ID:                 uuid.New(),
		Code:               strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:               strings.TrimSpace(req.Name),
		IsPaid:             isPaid,
		RequiresAttachment: req.RequiresAttachment,
		IsActive:           true,
		AnnualQuota:        quota,
		AllowCarryOver:     req.AllowCarryOver,
		MaxCarryOver:       maxCarryOver,
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.sink.Record(ctx, actorID, "leave_type_created", "leave_type", lt.ID.String(), map[string]any{
		"code":  lt.Code,
		"name":  lt.Name,
		"quota": lt.AnnualQuota.StringFixed(1),
	})
	s.logger.Info("create leave type success", zap.String("leave_type_id", lt.ID.String()))

	return mapToResponse(*lt), nil
}

// GetAll hides inactive types unless the caller may manage them
func (s *service) GetAll(ctx context.Context, includeInactive bool) ([]LeaveTypeResponse, error) {
	var (
		types []LeaveType
		err   error
	)
	if includeInactive {
		types, err = s.repo.FindAll(ctx)
	} else {
		types, err = s.repo.FindActive(ctx)
	}
	if err != nil {
		s.logger.Error("get all leave types failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(types), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("update leave type requested", zap.String("leave_type_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	quota, maxCarryOver, err := parseQuotaFields(req.AnnualQuota, req.MaxCarryOver)
	if err != nil {
		s.logger.Warn("update leave type validation failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	lt.Name = strings.TrimSpace(req.Name)
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	lt.RequiresAttachment = req.RequiresAttachment
	lt.AnnualQuota = quota
	lt.AllowCarryOver = req.AllowCarryOver
	lt.MaxCarryOver = maxCarryOver

	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.sink.Record(ctx, actorID, "leave_type_updated", "leave_type", lt.ID.String(), map[string]any{
		"name":  lt.Name,
		"quota": lt.AnnualQuota.StringFixed(1),
	})
	s.logger.Info("update leave type success", zap.String("leave_type_id", id))

	return mapToResponse(*lt), nil
}

// Deactivate is the delete operation: leave types are never hard-deleted
// because historical requests keep referencing them.
func (s *service) Deactivate(ctx context.Context, actorID, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	lt.IsActive = false
	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("deactivate leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.sink.Record(ctx, actorID, "leave_type_deactivated", "leave_type", lt.ID.String(), map[string]any{
		"name": lt.Name,
	})
	s.logger.Info("deactivate leave type success", zap.String("leave_type_id", id))

	return mapToResponse(*lt), nil
}

func parseQuotaFields(rawQuota string, rawMaxCarryOver *string) (decimal.Decimal, *decimal.Decimal, error) {
	quota, err := decimal.NewFromString(rawQuota)
	if err != nil || quota.IsNegative() {
		return decimal.Zero, nil, leavetypeerrors.ErrInvalidQuota
	}

	if rawMaxCarryOver == nil || *rawMaxCarryOver == "" {
		return quota, nil, nil
	}

	maxCarryOver, err := decimal.NewFromString(*rawMaxCarryOver)
	if err != nil || maxCarryOver.IsNegative() {
		return decimal.Zero, nil, leavetypeerrors.ErrInvalidMaxCarryOver
	}

	return quota, &maxCarryOver, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leavetypeerrors.ErrLeaveTypeAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return leavetypeerrors.ErrLeaveTypeAlreadyExists
	}

	return err
}
