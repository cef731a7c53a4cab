package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"go-leavehub/internal/shared/scope"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
	FindAll(ctx context.Context, from, to *time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := dateRange(r.db.WithContext(ctx), from, to).
		Scopes(scope.ByEmployee(employeeID)).
		Order("attendance_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, from, to *time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := dateRange(r.db.WithContext(ctx), from, to).
		Order("attendance_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func dateRange(db *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		db = db.Where("attendance_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("attendance_date <= ?", *to)
	}
	return db
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
