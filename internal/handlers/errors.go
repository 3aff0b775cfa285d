package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"erp-ledger/internal/logger"
	"erp-ledger/internal/services"
	"erp-ledger/pkg/utils"
)

// writeServiceError maps ledger error kinds onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrInvalidAmount):
		utils.Error(w, http.StatusUnprocessableEntity, "invalid_amount", err.Error())
	case errors.Is(err, services.ErrExceedsBalance):
		utils.Error(w, http.StatusUnprocessableEntity, "exceeds_balance", err.Error())
	case errors.Is(err, services.ErrNegativeTotal):
		utils.Error(w, http.StatusUnprocessableEntity, "negative_total", err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.Error(w, http.StatusUnprocessableEntity, "validation", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.Error(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("Unhandled service error")
		utils.Error(w, http.StatusInternalServerError, "internal", "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.Error(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return false
	}
	return true
}
