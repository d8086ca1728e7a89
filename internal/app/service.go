package app

import (
	"context"

	"invoice-discounting/internal/core"
)

// ApplicationService is the single interface every adapter (web, CLI) calls.
// It decouples presentation from the engine: implementations contain no
// rendering, no toasts, no display logic of any kind. Business-rule
// violations come back as the engine's typed errors.
type ApplicationService interface {
	// CreateClient registers a seller-owned client record.
	CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResult, error)

	// UpdateClientContact changes the mutable contact fields only; identity
	// and tax fields are frozen once the client exists.
	UpdateClientContact(ctx context.Context, clientID string, req UpdateClientContactRequest) (*ClientResult, error)

	// DeactivateClient soft-disables a client. Clients are never deleted.
	DeactivateClient(ctx context.Context, clientID string) (*ClientResult, error)

	// ListClients returns every registered client, active or not.
	ListClients(ctx context.Context) (*ClientListResult, error)

	// CreateContract drafts a contract addressed to a buyer.
	CreateContract(ctx context.Context, req CreateContractRequest) (*ContractResult, error)

	// SubmitContract moves a draft (or modification-requested) contract to
	// PENDING and snapshots its risk assessment.
	SubmitContract(ctx context.Context, contractID string, actor core.Actor) (*ContractResult, error)

	// DecideContract records the buyer's approve/reject/request-modification
	// verdict. Reject and request-modification require a comment.
	DecideContract(ctx context.Context, contractID string, decision core.Decision, actor core.Actor, comment string) (*ContractResult, error)

	// ListContracts returns all contracts.
	ListContracts(ctx context.Context) (*ContractListResult, error)

	// ListPendingContracts returns the buyer-scoped pending view.
	ListPendingContracts(ctx context.Context, buyerID string) (*ContractListResult, error)

	// CreateProject drafts a project with its milestones under a contract.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectResult, error)

	// SubmitProject moves a draft project to PENDING_APPROVAL. Requires an
	// approved contract and milestone percentages summing to exactly 100.
	SubmitProject(ctx context.Context, projectID string, actor core.Actor) (*ProjectResult, error)

	// ApproveProject is the buyer's acceptance; the project goes IN_PROGRESS.
	ApproveProject(ctx context.Context, projectID string, actor core.Actor) (*ProjectResult, error)

	// StartMilestone marks a milestone as being worked on.
	StartMilestone(ctx context.Context, projectID, milestoneName string, actor core.Actor) (*ProjectResult, error)

	// CompleteMilestone finishes a milestone; completing the last one
	// completes the project.
	CompleteMilestone(ctx context.Context, projectID, milestoneName string, actor core.Actor) (*ProjectResult, error)

	// ListProjects returns all projects.
	ListProjects(ctx context.Context) (*ProjectListResult, error)

	// CreateInvoice raises an invoice in PENDING_BUYER_APPROVAL with a frozen
	// pricing snapshot. A milestone may be invoiced at most once.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error)

	// DecideInvoice records the buyer's verdict on a pending invoice.
	DecideInvoice(ctx context.Context, invoiceID string, decision core.Decision, actor core.Actor, comment string) (*InvoiceResult, error)

	// ResubmitInvoice returns a modification-requested invoice to the buyer.
	ResubmitInvoice(ctx context.Context, invoiceID string, actor core.Actor) (*InvoiceResult, error)

	// FundInvoice disburses an approved invoice. FUNDED is terminal.
	FundInvoice(ctx context.Context, invoiceID string, actor core.Actor) (*InvoiceResult, error)

	// ListInvoices returns all invoices.
	ListInvoices(ctx context.Context) (*InvoiceListResult, error)

	// QuotePricing prices a hypothetical invoice without persisting anything.
	// Insufficient inputs yield the neutral result, flagged on the response.
	QuotePricing(ctx context.Context, in core.PricingInput) (*QuoteResult, error)

	// ScoreRisk computes the 0-100 approval score for a contract attribute
	// set without persisting anything.
	ScoreRisk(ctx context.Context, in core.RiskInput) (*core.RiskAssessment, error)
}
