package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn  func(ctx context.Context, entry *AuditLog) error
	findAllFn func(ctx context.Context, filter ListFilter) ([]AuditLog, int64, error)
}

func (f *fakeRepo) Create(ctx context.Context, entry *AuditLog) error {
	return f.createFn(ctx, entry)
}

func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]AuditLog, int64, error) {
	return f.findAllFn(ctx, filter)
}

func TestRecord_PersistsEntryWithMetadata(t *testing.T) {
	actorID := uuid.New()

	var saved *AuditLog
	repo := &fakeRepo{
		createFn: func(_ context.Context, entry *AuditLog) error {
			saved = entry
			return nil
		},
	}
	svc := NewService(repo)

	svc.Record(context.Background(), actorID.String(), "leave_request_created", "leave_request", "req-1", map[string]any{
		"status": "PENDING_MANAGER",
	})

	if assert.NotNil(t, saved) {
		assert.Equal(t, "leave_request_created", saved.Action)
		assert.Equal(t, "leave_request", saved.Entity)
		assert.Equal(t, "req-1", saved.EntityID)
		if assert.NotNil(t, saved.ActorID) {
			assert.Equal(t, actorID, *saved.ActorID)
		}

		var meta map[string]any
		assert.NoError(t, json.Unmarshal(saved.Metadata, &meta))
		assert.Equal(t, "PENDING_MANAGER", meta["status"])
	}
}

func TestRecord_UnparseableActorIsStoredAsSystem(t *testing.T) {
	var saved *AuditLog
	repo := &fakeRepo{
		createFn: func(_ context.Context, entry *AuditLog) error {
			saved = entry
			return nil
		},
	}
	svc := NewService(repo)

	svc.Record(context.Background(), "worker", "outbox_flush", "outbox", "batch-1", nil)

	if assert.NotNil(t, saved) {
		assert.Nil(t, saved.ActorID)
		assert.Empty(t, saved.Metadata)
	}
}

func TestRecord_SwallowsRepositoryFailure(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(_ context.Context, _ *AuditLog) error {
			return errors.New("db down")
		},
	}
	svc := NewService(repo)

	// tidak boleh panic dan tidak mengembalikan error ke pemanggil
	svc.Record(context.Background(), uuid.NewString(), "user_login", "user", "u-1", nil)
}

func TestExport_CapsBatchSize(t *testing.T) {
	var captured ListFilter
	repo := &fakeRepo{
		findAllFn: func(_ context.Context, filter ListFilter) ([]AuditLog, int64, error) {
			captured = filter
			return []AuditLog{
				{ID: uuid.New(), Action: "user_login", Entity: "user", EntityID: "u-1", CreatedAt: time.Now()},
			}, 1, nil
		},
	}
	svc := NewService(repo)

	entries, err := svc.Export(context.Background(), ListFilter{Action: "user_login", Page: 9, PageSize: 5})

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 200, captured.PageSize)
	assert.Equal(t, "user_login", captured.Action)
}

func TestList_MapsEntries(t *testing.T) {
	actorID := uuid.New()
	repo := &fakeRepo{
		findAllFn: func(_ context.Context, _ ListFilter) ([]AuditLog, int64, error) {
			return []AuditLog{
				{
					ID:        uuid.New(),
					ActorID:   &actorID,
					Action:    "leave_type_updated",
					Entity:    "leave_type",
					EntityID:  "lt-1",
					CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
				},
			}, 7, nil
		},
	}
	svc := NewService(repo)

	entries, total, err := svc.List(context.Background(), ListFilter{})

	assert.NoError(t, err)
	assert.EqualValues(t, 7, total)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "leave_type_updated", entries[0].Action)
		assert.Equal(t, "2025-03-01T08:00:00Z", entries[0].CreatedAt)
		if assert.NotNil(t, entries[0].ActorID) {
			assert.Equal(t, actorID.String(), *entries[0].ActorID)
		}
	}
}
