package leavetypeerrors

import (
	"net/http"

	"go-leavehub/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"leave type with this code or name already exists",
		http.StatusConflict,
	)
	ErrInvalidQuota = apperror.New(
		apperror.CodeInvalidInput,
		"annual_quota must be zero or positive",
		http.StatusBadRequest,
	)
	ErrInvalidMaxCarryOver = apperror.New(
		apperror.CodeInvalidInput,
		"max_carry_over must be zero or positive",
		http.StatusBadRequest,
	)
)
