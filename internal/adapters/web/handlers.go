package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"invoice-discounting/internal/app"
	"invoice-discounting/internal/bus"
)

// Handler holds the ApplicationService, the event bus, and the chi router.
type Handler struct {
	svc    app.ApplicationService
	bus    *bus.Bus
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, b *bus.Bus, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc, bus: b}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Event stream (SSE) ────────────────────────────────────────────────────
	r.Get("/api/events", h.events)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// ── Clients ───────────────────────────────────────────────────────────
		r.Get("/api/clients", h.listClients)
		r.Post("/api/clients", h.createClient)
		r.Patch("/api/clients/{id}/contact", h.updateClientContact)
		r.Post("/api/clients/{id}/deactivate", h.deactivateClient)

		// ── Contracts ─────────────────────────────────────────────────────────
		r.Get("/api/contracts", h.listContracts)
		r.Post("/api/contracts", h.createContract)
		r.Get("/api/buyers/{buyerID}/pending-contracts", h.listPendingContracts)
		r.Post("/api/contracts/{id}/submit", h.submitContract)
		r.Post("/api/contracts/{id}/decision", h.decideContract)

		// ── Projects ──────────────────────────────────────────────────────────
		r.Get("/api/projects", h.listProjects)
		r.Post("/api/projects", h.createProject)
		r.Post("/api/projects/{id}/submit", h.submitProject)
		r.Post("/api/projects/{id}/approve", h.approveProject)
		r.Post("/api/projects/{id}/milestones/{name}/start", h.startMilestone)
		r.Post("/api/projects/{id}/milestones/{name}/complete", h.completeMilestone)

		// ── Invoices ──────────────────────────────────────────────────────────
		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.createInvoice)
		r.Post("/api/invoices/{id}/decision", h.decideInvoice)
		r.Post("/api/invoices/{id}/resubmit", h.resubmitInvoice)
		r.Post("/api/invoices/{id}/fund", h.fundInvoice)

		// ── Pure computations ─────────────────────────────────────────────────
		r.Post("/api/pricing/quote", h.quotePricing)
		r.Post("/api/risk/score", h.scoreRisk)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlID extracts the {id} URL parameter.
func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
