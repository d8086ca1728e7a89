package app

import "invoice-discounting/internal/core"

// ClientResult is returned by client operations.
type ClientResult struct {
	Client *core.Client `json:"client"`
}

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.Client `json:"clients"`
}

// ContractResult is returned by contract lifecycle operations.
type ContractResult struct {
	Contract *core.Contract `json:"contract"`
}

// ContractListResult is returned by the contract listings.
type ContractListResult struct {
	Contracts []core.Contract `json:"contracts"`
}

// ProjectResult is returned by project lifecycle operations.
type ProjectResult struct {
	Project *core.Project `json:"project"`
}

// ProjectListResult is returned by ListProjects.
type ProjectListResult struct {
	Projects []core.Project `json:"projects"`
}

// InvoiceResult is returned by invoice lifecycle operations.
type InvoiceResult struct {
	Invoice *core.Invoice `json:"invoice"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice `json:"invoices"`
}

// QuoteResult is returned by QuotePricing. Insufficient marks the neutral
// all-zero pricing fallback: not a valid price of zero.
type QuoteResult struct {
	Pricing      core.PricingResult `json:"pricing"`
	Insufficient bool               `json:"insufficient"`
}
