package usecase

import (
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// toAppError keeps application errors raised inside a transaction as they
// are and reports anything else as an internal failure.
func toAppError(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(message, err)
}
