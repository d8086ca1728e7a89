package web

import (
	"net/http"

	"invoice-discounting/internal/app"
)

// createClient handles POST /api/clients.
func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req app.CreateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateClient(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateClientContact handles PATCH /api/clients/{id}/contact.
func (h *Handler) updateClientContact(w http.ResponseWriter, r *http.Request) {
	var req app.UpdateClientContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateClientContact(r.Context(), urlID(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deactivateClient handles POST /api/clients/{id}/deactivate.
func (h *Handler) deactivateClient(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.DeactivateClient(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listClients handles GET /api/clients.
func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
