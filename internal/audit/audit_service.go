package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder is the audit sink consumed by other modules. Record is
// fire-and-forget: a failed audit write never propagates back to the
// caller, so a successful workflow transition is never rolled back by
// an audit failure.
//
//go:generate mockgen -destination=mock/audit_recorder_mock.go -package=mock . Recorder
type Recorder interface {
	Record(ctx context.Context, actorID, action, entity, entityID string, metadata map[string]any)
}

type Service interface {
	Recorder
	List(ctx context.Context, filter ListFilter) ([]AuditLogResponse, int64, error)
	Export(ctx context.Context, filter ListFilter) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, actorID, action, entity, entityID string, metadata map[string]any) {
	entry := &AuditLog{
		ID:       uuid.New(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}

	if actorID != "" {
		if actorUUID, err := uuid.Parse(actorID); err == nil {
			entry.ActorID = &actorUUID
		}
	}

	if len(metadata) > 0 {
		payload, err := json.Marshal(metadata)
		if err != nil {
			s.logger.Error("audit metadata marshal failed",
				zap.String("action", action),
				zap.Error(err),
			)
		} else {
			entry.Metadata = payload
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("audit recorded",
		zap.String("action", action),
		zap.String("entity", entity),
		zap.String("entity_id", entityID),
	)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AuditLogResponse, int64, error) {
	entries, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(entries), total, nil
}

func (s *service) Export(ctx context.Context, filter ListFilter) ([]AuditLogResponse, error) {
	// Export ignores paging and caps at one export batch
	filter.Page = 1
	filter.PageSize = 200

	entries, _, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("export audit logs failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(entries), nil
}
