package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"invoice-discounting/internal/app"
	"invoice-discounting/internal/core"
)

// actorBody carries the acting party on lifecycle actions with no other input.
type actorBody struct {
	Actor app.ActorInput `json:"actor"`
}

// decisionBody carries an approval verdict plus the acting party.
type decisionBody struct {
	Decision string         `json:"decision"`
	Comment  string         `json:"comment"`
	Actor    app.ActorInput `json:"actor"`
}

// createContract handles POST /api/contracts.
func (h *Handler) createContract(w http.ResponseWriter, r *http.Request) {
	var req app.CreateContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateContract(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// submitContract handles POST /api/contracts/{id}/submit.
func (h *Handler) submitContract(w http.ResponseWriter, r *http.Request) {
	var body actorBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.SubmitContract(r.Context(), urlID(r), core.Actor(body.Actor))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// decideContract handles POST /api/contracts/{id}/decision.
func (h *Handler) decideContract(w http.ResponseWriter, r *http.Request) {
	var body decisionBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.DecideContract(r.Context(), urlID(r), core.Decision(body.Decision), core.Actor(body.Actor), body.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listContracts handles GET /api/contracts.
func (h *Handler) listContracts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListContracts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listPendingContracts handles GET /api/buyers/{buyerID}/pending-contracts.
func (h *Handler) listPendingContracts(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyerID")
	result, err := h.svc.ListPendingContracts(r.Context(), buyerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
