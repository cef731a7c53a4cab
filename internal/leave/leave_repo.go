package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-leavehub/internal/shared/scope"
)

type ListFilter struct {
	EmployeeID string
	Statuses   []string
	Page       int
	PageSize   int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	FindActiveByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindApprovedInRange(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) ([]LeaveRequest, error)
	FindPendingManagerByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	LockByID(ctx context.Context, id string) (*LeaveRequest, error)
	UpdateDecision(ctx context.Context, req *LeaveRequest) error
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

// Create inserts through execer so the row lands in the same
// transaction as its outbox event when WithTx is in effect.
func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	query := `
        INSERT INTO leave_requests (
            id, employee_id, leave_type_id, start_date, end_date, reason, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		req.ID.String(), req.EmployeeID.String(), req.LeaveTypeID.String(),
		req.StartDate, req.EndDate, req.Reason, req.Status,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if filter.EmployeeID != "" {
		query = query.Scopes(scope.ByEmployee(filter.EmployeeID))
	}
	query = query.Scopes(scope.ByStatus(filter.Statuses...))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var reqs []LeaveRequest
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reqs).Error
	return reqs, total, err
}

// FindActiveByEmployee returns the requests that occupy their date
// range: both pending stages and approved.
func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(
			scope.ByEmployee(employeeID),
			scope.ByStatus(BlockingStatuses()...),
		).
		Order("start_date ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindApprovedInRange(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(
			scope.ByEmployee(employeeID),
			scope.ByStatus(StatusApproved),
			scope.DateOverlap(from, to),
		).
		Where("leave_type_id = ?", leaveTypeID).
		Order("start_date ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindPendingManagerByManager(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("employees.manager_id = ?", managerID).
		Scopes(scope.ByStatus(StatusPendingManager)).
		Order("leave_requests.created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

// LockByID reads a request under SELECT ... FOR UPDATE. It must run
// inside a transaction installed via WithTx; callers outside one get
// sql.ErrTxDone so the misuse surfaces immediately.
func (r *repository) LockByID(ctx context.Context, id string) (*LeaveRequest, error) {
	if r.tx == nil {
		return nil, sql.ErrTxDone
	}

	query := `
SELECT
	id::text,
	employee_id::text,
	leave_type_id::text,
	start_date,
	end_date,
	COALESCE(reason, ''),
	status,
	manager_decided_by::text,
	manager_decided_at,
	manager_decision_note,
	hr_decided_by::text,
	hr_decided_at,
	hr_decision_note,
	created_at,
	updated_at
FROM leave_requests
WHERE id = $1
FOR UPDATE
`

	var (
		req                          LeaveRequest
		idStr, employeeID, leaveType string
		mgrBy, mgrNote               sql.NullString
		mgrAt                        sql.NullTime
		hrBy, hrNote                 sql.NullString
		hrAt                         sql.NullTime
	)
	err := r.tx.QueryRowContext(ctx, query, id).Scan(
		&idStr,
		&employeeID,
		&leaveType,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Status,
		&mgrBy, &mgrAt, &mgrNote,
		&hrBy, &hrAt, &hrNote,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if req.ID, err = uuid.Parse(idStr); err != nil {
		return nil, err
	}
	if req.EmployeeID, err = uuid.Parse(employeeID); err != nil {
		return nil, err
	}
	if req.LeaveTypeID, err = uuid.Parse(leaveType); err != nil {
		return nil, err
	}

	if req.ManagerDecidedBy, err = nullableUUID(mgrBy); err != nil {
		return nil, err
	}
	req.ManagerDecidedAt = nullableTime(mgrAt)
	req.ManagerDecisionNote = nullableString(mgrNote)
	if req.HRDecidedBy, err = nullableUUID(hrBy); err != nil {
		return nil, err
	}
	req.HRDecidedAt = nullableTime(hrAt)
	req.HRDecisionNote = nullableString(hrNote)

	return &req, nil
}

// UpdateDecision persists the status and the decision metadata of one
// approval stage. It honors WithTx so the write stays inside the same
// transaction that locked the row.
func (r *repository) UpdateDecision(ctx context.Context, req *LeaveRequest) error {
	query := `
UPDATE leave_requests
SET
	status = $2,
	manager_decided_by = $3,
	manager_decided_at = $4,
	manager_decision_note = $5,
	hr_decided_by = $6,
	hr_decided_at = $7,
	hr_decision_note = $8,
	updated_at = NOW()
WHERE id = $1
`

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		req.ID.String(), req.Status,
		uuidOrNil(req.ManagerDecidedBy), req.ManagerDecidedAt, req.ManagerDecisionNote,
		uuidOrNil(req.HRDecidedBy), req.HRDecidedAt, req.HRDecisionNote,
	)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func nullableUUID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
