package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"

	"go-leavehub/internal/domain"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

// Role hierarchy: SystemAdmin inherits HRManager, HRManager and Manager
// inherit Employee. Permissions are keyed by (role, resource, action).
var groupings = [][2]string{
	{domain.RoleSystemAdmin, domain.RoleHRManager},
	{domain.RoleHRManager, domain.RoleEmployee},
	{domain.RoleManager, domain.RoleEmployee},
}

var policies = [][3]string{
	{domain.RoleEmployee, "leave_type", "read"},
	{domain.RoleHRManager, "leave_type", "create"},
	{domain.RoleHRManager, "leave_type", "update"},
	{domain.RoleHRManager, "leave_type", "deactivate"},

	{domain.RoleEmployee, "leave_request", "create"},
	{domain.RoleEmployee, "leave_request", "read"},
	{domain.RoleEmployee, "leave_request", "cancel"},
	{domain.RoleManager, "leave_request", "decide_manager"},
	{domain.RoleHRManager, "leave_request", "decide_hr"},

	{domain.RoleEmployee, "leave_balance", "read_self"},
	{domain.RoleHRManager, "leave_balance", "read_any"},

	{domain.RoleEmployee, "employee", "read"},
	{domain.RoleHRManager, "employee", "create"},
	{domain.RoleHRManager, "employee", "update"},
	{domain.RoleHRManager, "employee", "delete"},

	{domain.RoleEmployee, "attendance", "check_in"},
	{domain.RoleEmployee, "attendance", "check_out"},
	{domain.RoleEmployee, "attendance", "read"},
	{domain.RoleHRManager, "attendance", "read_all"},

	{domain.RoleSystemAdmin, "audit", "read"},
	{domain.RoleSystemAdmin, "audit", "export"},
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	l.Info("rbac policy seeded",
		zap.Int("groupings", len(groupings)),
		zap.Int("policies", len(policies)),
	)

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
