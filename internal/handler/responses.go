package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
	"github.com/osse101/GrandChallenge_Go/internal/tournament"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped user message.
// Server-side failures are also reported to Sentry.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op, "error", err)
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub()
		}
		hub.CaptureException(err)
	} else {
		log.Warn(op, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgTournamentNotFoundError  = "Tournament not found"
	ErrMsgChallengeNotFoundError   = "Challenge not found"
	ErrMsgPlayerNotFoundError      = "Player not found"
	ErrMsgAlreadyStartedError      = "Tournament already started. Reset it first."
	ErrMsgTournamentFinishedError  = "Tournament is finished"
	ErrMsgAlreadyPlayedError       = "Challenge already has a different winner"
	ErrMsgResultMissingError       = "Every challenge needs a winner before the round can close"
	ErrMsgInvalidWinnerError       = "Winner must be one of the two contestants"
	ErrMsgNotEnoughParticipantsErr = "At least two participants are required"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrTournamentNotFound):
		return http.StatusNotFound, ErrMsgTournamentNotFoundError
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound, ErrMsgChallengeNotFoundError
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrNotStarted):
		return http.StatusConflict, tournament.MsgNoCurrentRound
	case errors.Is(err, domain.ErrAlreadyStarted):
		return http.StatusConflict, ErrMsgAlreadyStartedError
	case errors.Is(err, domain.ErrTournamentFinished):
		return http.StatusConflict, ErrMsgTournamentFinishedError
	case errors.Is(err, domain.ErrAlreadyPlayed):
		return http.StatusConflict, ErrMsgAlreadyPlayedError
	case errors.Is(err, domain.ErrResultMissing):
		return http.StatusConflict, ErrMsgResultMissingError
	case errors.Is(err, domain.ErrInvalidWinner):
		return http.StatusBadRequest, ErrMsgInvalidWinnerError
	case errors.Is(err, domain.ErrNotEnoughParticipants):
		return http.StatusBadRequest, ErrMsgNotEnoughParticipantsErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
