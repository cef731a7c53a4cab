package leaveerrors

import (
	"net/http"

	"go-leavehub/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be a valid positive integer",
		http.StatusBadRequest,
	)
	ErrYearRequired = apperror.New(
		apperror.CodeInvalidInput,
		"year is required",
		http.StatusBadRequest,
	)
	ErrEmployeeIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id is required",
		http.StatusBadRequest,
	)
	ErrLeaveTypeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not active",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave request overlaps an existing active request",
		http.StatusConflict,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the request owner may cancel it",
		http.StatusForbidden,
	)
	ErrUnknownAction = apperror.New(
		apperror.CodeInvalidInput,
		"unknown workflow action",
		http.StatusBadRequest,
	)
)

// InvalidTransition names the current status so the caller can report
// exactly which precondition failed.
func InvalidTransition(action, currentStatus string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeInvalidState,
		http.StatusConflict,
		"cannot %s a leave request in status %s", action, currentStatus,
	)
}

func MissingCapability(capability string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeForbidden,
		http.StatusForbidden,
		"actor lacks the %s capability", capability,
	)
}
