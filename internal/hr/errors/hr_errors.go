package hrerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrHRProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"HR profile not found",
		http.StatusNotFound,
	)
	ErrHRProfileAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"HR profile already exists",
		http.StatusConflict,
	)
)
