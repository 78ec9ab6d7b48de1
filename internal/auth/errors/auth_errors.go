package autherrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrTokenMissing = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token expired",
		http.StatusUnauthorized,
	)

	// Deleted accounts keep valid signatures until expiry; the lookup stops them.
	ErrAccountGone = apperror.New(
		apperror.CodeUnauthorized,
		"Account no longer exists",
		http.StatusUnauthorized,
	)

	// Same error for unknown email and wrong password.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeValidation,
		"Role must be one of employee, hr, employer",
		http.StatusBadRequest,
	)

	ErrMissingEmployeeName = apperror.New(
		apperror.CodeValidation,
		"first_name and last_name are required for employee accounts",
		http.StatusBadRequest,
	)

	ErrMissingAvatar = apperror.New(
		apperror.CodeValidation,
		"avatar url is required",
		http.StatusBadRequest,
	)
)
