package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	attendanceerrors "go-leavehub/internal/attendance/errors"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findByEmployeeFn        func(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
	findAllFn               func(ctx context.Context, from, to *time.Time) ([]Attendance, error)
	updateFn                func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                    { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error) {
	return f.findByEmployeeFn(ctx, employeeID, from, to)
}
func (f *fakeRepo) FindAll(ctx context.Context, from, to *time.Time) ([]Attendance, error) {
	return f.findAllFn(ctx, from, to)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error   { return f.updateFn(ctx, a) }

func TestService_ClockInAndClockOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	ctx := context.Background()

	var saved Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		return &saved, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.ClockIn(ctx, employeeID, ClockInRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, inResp.ID)

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.ClockOut(ctx, employeeID, ClockOutRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, outResp.ClockOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New()}, nil
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(context.Background(), employeeID, ClockInRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOut_WithoutClockIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockOut(context.Background(), uuid.New().String(), ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrNoClockInToday)
}

func TestService_GetAll_ScopesByRole(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, from, to *time.Time) ([]Attendance, error) {
			return []Attendance{{ID: uuid.New()}, {ID: uuid.New()}}, nil
		},
		findByEmployeeFn: func(ctx context.Context, eid string, from, to *time.Time) ([]Attendance, error) {
			assert.Equal(t, employeeID.String(), eid)
			return []Attendance{{ID: uuid.New(), EmployeeID: employeeID}}, nil
		},
	}
	svc := NewService(db, repo)

	all, err := svc.GetAll(context.Background(), employeeID.String(), true, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.GetAll(context.Background(), employeeID.String(), false, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, own, 1)
}
