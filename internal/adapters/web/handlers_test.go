package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webAdapter "invoice-discounting/internal/adapters/web"
	"invoice-discounting/internal/app"
	"invoice-discounting/internal/bus"
	"invoice-discounting/internal/core"
	"invoice-discounting/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewMemoryStore()
	b := bus.New()
	engine := core.NewWorkflowEngine(st, b, nil)
	svc := app.NewAppService(st, engine, nil)
	srv := httptest.NewServer(webAdapter.NewHandler(svc, b, ""))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decimalJSON(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateAndListClients(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/clients", app.CreateClientRequest{
		LegalName: "Acme Textiles",
		GSTIN:     "27AAPFU0939F1ZV",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody[app.ClientResult](t, resp)
	assert.NotEmpty(t, created.Client.ID)
	assert.True(t, created.Client.Active)

	listResp, err := http.Get(srv.URL + "/api/clients")
	require.NoError(t, err)
	list := decodeBody[app.ClientListResult](t, listResp)
	require.Len(t, list.Clients, 1)
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	// Missing legal name: invalid input.
	resp := postJSON(t, srv.URL+"/api/clients", app.CreateClientRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "INVALID_INPUT", body["code"])

	// Unknown contract: not found.
	resp = postJSON(t, srv.URL+"/api/contracts/no-such-id/submit", map[string]any{
		"actor": app.ActorInput{PartyID: "seller-1", Role: "seller"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeBody[map[string]string](t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])

	// Malformed body: bad request before any handler logic.
	badResp, err := http.Post(srv.URL+"/api/clients", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
	badResp.Body.Close()
}

func TestContractDecisionOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/contracts", app.CreateContractRequest{
		Title:     "Supply agreement",
		BuyerID:   "buyer-9",
		BuyerName: "Bharat Retail",
		Value:     decimalJSON("500000"),
		StartDate: "2026-10-01",
		EndDate:   "2027-09-30",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody[app.ContractResult](t, resp)
	id := created.Contract.ID

	// Deciding a draft is an illegal transition: 409.
	resp = postJSON(t, srv.URL+"/api/contracts/"+id+"/decision", map[string]any{
		"decision": "approve",
		"actor":    app.ActorInput{PartyID: "buyer-9", Role: "buyer"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/contracts/"+id+"/submit", map[string]any{
		"actor": app.ActorInput{PartyID: "seller-1", Role: "seller"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	submitted := decodeBody[app.ContractResult](t, resp)
	assert.Equal(t, core.ContractPending, submitted.Contract.Status)

	pendingResp, err := http.Get(srv.URL + "/api/buyers/buyer-9/pending-contracts")
	require.NoError(t, err)
	pending := decodeBody[app.ContractListResult](t, pendingResp)
	require.Len(t, pending.Contracts, 1)
}

func TestQuoteOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/pricing/quote", map[string]any{
		"invoice_value":     "1000000",
		"payment_term_days": 30,
		"credit_score":      750,
		"annual_revenue":    "5000000",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quote := decodeBody[app.QuoteResult](t, resp)
	assert.False(t, quote.Insufficient)
	assert.True(t, quote.Pricing.DiscountRate.Equal(decimalJSON("7")))
}
