package leaveerrors

import (
	"fmt"
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"start_date must be on or before end_date",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeValidation,
		"category must be one of sick, vacation, personal, other",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeValidation,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeValidation,
		"status filter must be one of pending, approved, rejected",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Invalid leave status transition",
		http.StatusBadRequest,
	)
)

// AlreadyDecided reports a review attempt on a request that has left pending.
func AlreadyDecided(current string) *apperror.AppError {
	return apperror.Wrap(
		ErrInvalidStatusTransition,
		apperror.CodeInvalidState,
		fmt.Sprintf("Leave request has already been %s", current),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"current_status": current})
}
