package v1

import (
	"strings"

	"go-mockinterview-backend/pkg/apperror"
	"go-mockinterview-backend/pkg/validation"
)

// bindError turns a binding failure into a client-facing 400 with
// readable per-field messages.
func bindError(err error) *apperror.AppError {
	return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
}
