package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/GrandChallenge_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req RecordResultRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Record result"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetUUIDParam reads a UUID path parameter from the chi route context.
// If the parameter is missing or malformed, it writes a 400 response and returns false.
//
// Example usage:
//
//	id, ok := GetUUIDParam(r, w, "id")
//	if !ok {
//	    return
//	}
func GetUUIDParam(r *http.Request, w http.ResponseWriter, paramName string) (uuid.UUID, bool) {
	log := logger.FromContext(r.Context())
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		log.Warn(fmt.Sprintf("Missing %s URL parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingURLParam, paramName))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warn(fmt.Sprintf("Invalid %s URL parameter", paramName), "value", raw, "error", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidURLParam, paramName))
		return uuid.Nil, false
	}
	return id, true
}

// LogRequestFields is a helper to log common request fields in a structured way.
//
// Example usage:
//
//	LogRequestFields(log, "tournament_id", id, "winner", req.Winner)
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		log.Warn("LogRequestFields called with odd number of arguments")
		return
	}
	log.Debug("Request details", keyvals...)
}
