package audit

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index:idx_audit_logs_actor"`
	Action    string     `gorm:"type:varchar(100);not null;index:idx_audit_logs_action"`
	Entity    string     `gorm:"type:varchar(100);not null;default:'';index:idx_audit_logs_entity"`
	EntityID  string     `gorm:"type:varchar(64);not null;default:'';index:idx_audit_logs_entity"`
	IPAddress *string    `gorm:"type:inet"`
	Metadata  []byte     `gorm:"type:jsonb"`
	CreatedAt time.Time  `gorm:"index:idx_audit_logs_created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
