package handler

import (
	"net/http"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
	"github.com/osse101/GrandChallenge_Go/internal/tournament"
)

// TournamentHandler serves the public bracket endpoints and the admin
// progression controls.
type TournamentHandler struct {
	service tournament.Service
}

// NewTournamentHandler creates a new TournamentHandler
func NewTournamentHandler(service tournament.Service) *TournamentHandler {
	return &TournamentHandler{service: service}
}

// CreateTournamentRequest is the body of POST /tournaments
type CreateTournamentRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// StartRequest seeds round 0; the order of participants is the seed order
type StartRequest struct {
	Participants []string `json:"participants" validate:"required,min=2,unique,dive,participant"`
}

// RecordResultRequest names the winner of a challenge
type RecordResultRequest struct {
	Winner string `json:"winner" validate:"required,participant"`
}

// StatusResponse reports whether a tournament is over
type StatusResponse struct {
	Finished bool    `json:"finished"`
	Champion *string `json:"champion,omitempty"`
}

// HandleCreate creates an empty tournament
// @Summary Create tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param request body CreateTournamentRequest true "Tournament name"
// @Success 201 {object} domain.Tournament
// @Failure 400 {object} ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tournaments [post]
func (h *TournamentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTournamentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create tournament"); err != nil {
		return
	}

	t, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateTournamentFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// HandleList lists tournament headers
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Success 200 {array} domain.Tournament
// @Router /api/v1/tournaments [get]
func (h *TournamentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgListTournamentsFailed, err)
		return
	}
	if list == nil {
		list = []domain.Tournament{}
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleDashboard returns the bracket dashboard of a tournament
// @Summary Tournament dashboard
// @Description Current round with per-contestant outcomes and standings
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} tournament.Dashboard
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tournaments/{id} [get]
func (h *TournamentHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetDashboardFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// HandleStatus reports whether the tournament is finished
// @Summary Tournament status
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tournaments/{id}/status [get]
func (h *TournamentHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	finished, err := h.service.IsFinished(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetDashboardFailed, err)
		return
	}
	resp := StatusResponse{Finished: finished}
	if finished {
		t, err := h.service.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetDashboardFailed, err)
			return
		}
		resp.Champion = t.Champion
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleRounds returns every round in order
// @Summary List rounds
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {array} domain.Round
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tournaments/{id}/rounds [get]
func (h *TournamentHandler) HandleRounds(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	rounds, err := h.service.GetRounds(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetRoundsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, rounds)
}

// HandleCurrentRound returns the most recent round
// @Summary Current round
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} domain.Round
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/tournaments/{id}/rounds/current [get]
func (h *TournamentHandler) HandleCurrentRound(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	round, err := h.service.GetCurrentRound(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCurrentRoundFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, round)
}

// HandleRecordResult records the winner of a challenge
// @Summary Record challenge result
// @Description Recording the same winner twice is a no-op; a different winner is rejected
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param challengeID path string true "Challenge ID"
// @Param request body RecordResultRequest true "Winner"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tournaments/{id}/challenges/{challengeID}/result [post]
func (h *TournamentHandler) HandleRecordResult(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}
	challengeID, ok := GetUUIDParam(r, w, "challengeID")
	if !ok {
		return
	}

	var req RecordResultRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record result"); err != nil {
		return
	}
	LogRequestFields(logger.FromContext(r.Context()), "tournament_id", id, "challenge_id", challengeID, "winner", req.Winner)

	challenge, err := h.service.RecordResult(r.Context(), id, challengeID, req.Winner)
	if err != nil {
		respondServiceError(w, r, ErrMsgRecordResultFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgResultRecorded, Data: challenge})
}

// HandleStart seeds round 0
// @Summary Start tournament
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Tournament ID"
// @Param request body StartRequest true "Participants in seed order"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tournaments/{id}/admin/start [post]
func (h *TournamentHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	var req StartRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start tournament"); err != nil {
		return
	}

	round, err := h.service.Start(r.Context(), id, req.Participants)
	if err != nil {
		respondServiceError(w, r, ErrMsgStartFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgTournamentStarted, Data: round})
}

// HandleAdvance closes the current round and opens the next one
// @Summary Advance round
// @Tags admin
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tournaments/{id}/admin/advance [post]
func (h *TournamentHandler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	round, err := h.service.AdvanceRound(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgAdvanceRoundFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgRoundAdvanced, Data: round})
}

// HandleClose closes the current round without opening the next one
// @Summary Close round
// @Tags admin
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tournaments/{id}/admin/close [post]
func (h *TournamentHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	round, err := h.service.CloseRound(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgCloseRoundFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgRoundClosed, Data: round})
}

// HandleReset drops participants and rounds
// @Summary Reset tournament
// @Tags admin
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tournaments/{id}/admin/reset [post]
func (h *TournamentHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id")
	if !ok {
		return
	}

	if err := h.service.Reset(r.Context(), id); err != nil {
		respondServiceError(w, r, ErrMsgResetFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTournamentReset})
}
