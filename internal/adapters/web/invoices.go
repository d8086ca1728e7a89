package web

import (
	"net/http"

	"invoice-discounting/internal/app"
	"invoice-discounting/internal/core"
)

// createInvoice handles POST /api/invoices.
func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.CreateInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// decideInvoice handles POST /api/invoices/{id}/decision.
func (h *Handler) decideInvoice(w http.ResponseWriter, r *http.Request) {
	var body decisionBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.DecideInvoice(r.Context(), urlID(r), core.Decision(body.Decision), core.Actor(body.Actor), body.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// resubmitInvoice handles POST /api/invoices/{id}/resubmit.
func (h *Handler) resubmitInvoice(w http.ResponseWriter, r *http.Request) {
	var body actorBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.ResubmitInvoice(r.Context(), urlID(r), core.Actor(body.Actor))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// fundInvoice handles POST /api/invoices/{id}/fund.
func (h *Handler) fundInvoice(w http.ResponseWriter, r *http.Request) {
	var body actorBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.FundInvoice(r.Context(), urlID(r), core.Actor(body.Actor))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listInvoices handles GET /api/invoices.
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInvoices(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// quotePricing handles POST /api/pricing/quote.
func (h *Handler) quotePricing(w http.ResponseWriter, r *http.Request) {
	var in core.PricingInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.svc.QuotePricing(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// scoreRisk handles POST /api/risk/score.
func (h *Handler) scoreRisk(w http.ResponseWriter, r *http.Request) {
	var in core.RiskInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.svc.ScoreRisk(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
