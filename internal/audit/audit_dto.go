package audit

import (
	"encoding/json"
	"time"
)

type AuditLogResponse struct {
	ID        string          `json:"id"`
	ActorID   *string         `json:"actor_id,omitempty"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	IPAddress *string         `json:"ip_address,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func mapToResponse(entry AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:        entry.ID.String(),
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		IPAddress: entry.IPAddress,
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.ActorID != nil {
		v := entry.ActorID.String()
		resp.ActorID = &v
	}
	return resp
}

func mapToListResponse(entries []AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
