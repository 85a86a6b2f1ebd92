package adaptor

import (
	"errors"
	"net/http"

	"sauna-booking/internal/usecase"
	"sauna-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the lifecycle's typed results onto HTTP. Anything
// not in the taxonomy is an internal failure and stays opaque to the caller.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrClosedDate):
		log.Info(operation+" rejected - closed date", zap.Error(err))
		utils.ResponseConflict(w, "The shop is closed on this date")

	case errors.Is(err, usecase.ErrSlotUnavailable):
		log.Info(operation+" rejected - slot unavailable", zap.Error(err))
		utils.ResponseConflict(w, "This slot is not available")

	case errors.Is(err, usecase.ErrInvalidToken):
		log.Warn(operation+" failed - invalid token", zap.Error(err))
		utils.ResponseNotFound(w, "Invalid or unknown confirmation token")

	case errors.Is(err, usecase.ErrExpired):
		log.Info(operation+" failed - expired", zap.Error(err))
		utils.ResponseGone(w, "The confirmation window has expired")

	case errors.Is(err, usecase.ErrVerificationFailed):
		log.Warn(operation+" failed - verification", zap.Error(err))
		utils.ResponseForbidden(w, "Verification failed")

	case errors.Is(err, usecase.ErrAlreadyCancelled):
		log.Info(operation+" - already cancelled", zap.Error(err))
		utils.ResponseConflict(w, "The reservation is already cancelled")

	case errors.Is(err, usecase.ErrNotFound):
		log.Info(operation+" - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Reservation not found")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
