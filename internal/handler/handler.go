package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/dispusip/arsip-api/pkg/errors"
)

// bindError converts a Gin binding failure into the shared validation error,
// keeping per-field detail when the cause is a validator error.
func bindError(err error) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[strings.ToLower(fe.StructNamespace())] = fe.Tag()
		}
		return appErrors.WithFields(appErrors.ErrValidation, fields)
	}
	return appErrors.Clone(appErrors.ErrValidation, "")
}
