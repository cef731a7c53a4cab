package employee

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	employeeerrors "go-leavehub/internal/employee/errors"
)

// DirectoryEntry is the minimal employee view other modules depend on:
// identity, hire date (bounds entitlement) and manager reference (picks
// the initial workflow stage).
type DirectoryEntry struct {
	ID        uuid.UUID
	HireDate  time.Time
	ManagerID *uuid.UUID
}

type Directory interface {
	Get(ctx context.Context, employeeID string) (DirectoryEntry, error)
}

type directory struct {
	repo Repository
}

func NewDirectory(repo Repository) Directory {
	return &directory{repo: repo}
}

func (d *directory) Get(ctx context.Context, employeeID string) (DirectoryEntry, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return DirectoryEntry{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := d.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DirectoryEntry{}, employeeerrors.ErrEmployeeNotFound
		}
		return DirectoryEntry{}, err
	}

	return DirectoryEntry{
		ID:        empl.ID,
		HireDate:  empl.HireDate,
		ManagerID: empl.ManagerID,
	}, nil
}
