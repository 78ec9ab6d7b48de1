package usererrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrSelfDeletion = apperror.New(
		apperror.CodeInvalidInput,
		"You cannot delete your own account",
		http.StatusBadRequest,
	)
)
