package employee

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	employeeerrors "go-leavehub/internal/employee/errors"
	"go-leavehub/internal/messaging/kafka"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, empl *Employee) error
	findAllFn  func(ctx context.Context) ([]Employee, error)
	findByIDFn func(ctx context.Context, id string) (*Employee, error)
	updateFn   func(ctx context.Context, empl *Employee) error
	deleteFn   func(ctx context.Context, id string) error
	existsFn   func(ctx context.Context, id string) (bool, error)
}

func (f *fakeRepo) WithTx(_ *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	return f.createFn(ctx, empl)
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error {
	return f.updateFn(ctx, empl)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo) Exists(ctx context.Context, id string) (bool, error) {
	return f.existsFn(ctx, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(_ context.Context, _ string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(_ *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(_ context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(_ context.Context, _ int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(_ context.Context, _ string) error { return nil }

func (f *fakeOutbox) MarkFailed(_ context.Context, _ string, _ string) error { return nil }

func TestCreate_GeneratesEmployeeNumber(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	var saved *Employee
	repo := &fakeRepo{
		createFn: func(_ context.Context, empl *Employee) error {
			saved = empl
			return nil
		},
	}
	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, &fakeCounter{next: 41}, outbox)

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Siti Rahma",
		Email:    "siti@example.com",
		HireDate: "2023-01-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
	assert.Equal(t, "ACTIVE", resp.EmploymentStatus)
	assert.NotNil(t, saved)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), saved.HireDate)

	if assert.Len(t, outbox.events, 1) {
		assert.Equal(t, "employee_created", outbox.events[0].EventType)
		assert.Equal(t, saved.ID.String(), outbox.events[0].AggregateID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_KeepsProvidedEmployeeNumber(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{
		createFn: func(_ context.Context, _ *Employee) error { return nil },
	}
	svc := NewService(db, repo, &fakeCounter{})

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:       "Budi Santoso",
		Email:          "budi@example.com",
		EmployeeNumber: "EMP-CUSTOM",
		HireDate:       "2022-06-15",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-CUSTOM", resp.EmployeeNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsBadHireDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(_ context.Context, _ *Employee) error {
			t.Fatal("repo should not be called")
			return nil
		},
	}
	svc := NewService(db, repo, &fakeCounter{})

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
		HireDate: "15-06-2022",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ManagerMustExist(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		existsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
	}
	svc := NewService(db, repo, &fakeCounter{})

	managerID := uuid.NewString()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:  "Budi Santoso",
		Email:     "budi@example.com",
		HireDate:  "2022-06-15",
		ManagerID: &managerID,
	})

	assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)

	bad := "not-a-uuid"
	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:  "Budi Santoso",
		Email:     "budi@example.com",
		HireDate:  "2022-06-15",
		ManagerID: &bad,
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidManagerID)
}

func TestUpdate_RejectsSelfAsManager(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	svc := NewService(db, repo, &fakeCounter{})

	id := uuid.NewString()
	_, err := svc.Update(context.Background(), id, UpdateEmployeeRequest{
		FullName:  "Budi Santoso",
		ManagerID: &id,
	})

	assert.ErrorIs(t, err, employeeerrors.ErrSelfManager)
}

func TestUpdate_AppliesChanges(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	id := uuid.New()
	stored := &Employee{
		ID:               id,
		FullName:         "Budi Santoso",
		Email:            "budi@example.com",
		EmployeeNumber:   "EMP-000001",
		HireDate:         time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
		EmploymentStatus: "ACTIVE",
	}

	var updated *Employee
	repo := &fakeRepo{
		findByIDFn: func(_ context.Context, got string) (*Employee, error) {
			assert.Equal(t, id.String(), got)
			return stored, nil
		},
		updateFn: func(_ context.Context, empl *Employee) error {
			updated = empl
			return nil
		},
	}
	svc := NewService(db, repo, &fakeCounter{})

	resp, err := svc.Update(context.Background(), id.String(), UpdateEmployeeRequest{
		FullName:         "Budi Santoso Jr",
		Phone:            "0812000111",
		EmploymentStatus: "ON_LEAVE",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Budi Santoso Jr", resp.FullName)
	assert.Equal(t, "ON_LEAVE", resp.EmploymentStatus)
	assert.NotNil(t, updated)
	assert.Equal(t, "0812000111", updated.Phone)
	// nomor karyawan tidak boleh berubah lewat update
	assert.Equal(t, "EMP-000001", updated.EmployeeNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_MapsNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(_ context.Context, _ string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo, &fakeCounter{})

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)

	_, err = svc.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}
