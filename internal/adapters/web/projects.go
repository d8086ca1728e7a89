package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"invoice-discounting/internal/app"
	"invoice-discounting/internal/core"
)

// createProject handles POST /api/projects.
func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req app.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateProject(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// submitProject handles POST /api/projects/{id}/submit.
func (h *Handler) submitProject(w http.ResponseWriter, r *http.Request) {
	var body actorBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.SubmitProject(r.Context(), urlID(r), core.Actor(body.Actor))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// approveProject handles POST /api/projects/{id}/approve.
func (h *Handler) approveProject(w http.ResponseWriter, r *http.Request) {
	var body actorBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.ApproveProject(r.Context(), urlID(r), core.Actor(body.Actor))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// startMilestone handles POST /api/projects/{id}/milestones/{name}/start.
func (h *Handler) startMilestone(w http.ResponseWriter, r *http.Request) {
	var body actorBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.StartMilestone(r.Context(), urlID(r), chi.URLParam(r, "name"), core.Actor(body.Actor))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// completeMilestone handles POST /api/projects/{id}/milestones/{name}/complete.
func (h *Handler) completeMilestone(w http.ResponseWriter, r *http.Request) {
	var body actorBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CompleteMilestone(r.Context(), urlID(r), chi.URLParam(r, "name"), core.Actor(body.Actor))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listProjects handles GET /api/projects.
func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
