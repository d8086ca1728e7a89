package app

import (
	"github.com/shopspring/decimal"
)

// CreateClientRequest registers a new client under the seller context.
type CreateClientRequest struct {
	LegalName        string          `json:"legal_name"`
	GSTIN            string          `json:"gstin"`
	PAN              string          `json:"pan"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	PaymentTermsDays int             `json:"payment_terms_days"`
}

// UpdateClientContactRequest carries the only client fields that stay
// mutable after creation.
type UpdateClientContactRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateContractRequest drafts a contract addressed to a buyer.
type CreateContractRequest struct {
	Title              string          `json:"title"`
	Code               string          `json:"code"`
	BuyerID            string          `json:"buyer_id"`
	BuyerName          string          `json:"buyer_name"`
	Type               string          `json:"type"`
	Value              decimal.Decimal `json:"value"`
	Currency           string          `json:"currency"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	PaymentTermsDays   int             `json:"payment_terms_days"`
	AdvancePercent     decimal.Decimal `json:"advance_percent"`
	RetentionPercent   decimal.Decimal `json:"retention_percent"`
	TaxMode            string          `json:"tax_mode"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	RegistrationNumber string          `json:"registration_number"`
	CreditScore        int             `json:"credit_score"`
	AnnualRevenue      decimal.Decimal `json:"annual_revenue"`
}

// MilestoneInput is one milestone line on a new project.
type MilestoneInput struct {
	Name        string          `json:"name"`
	Percent     decimal.Decimal `json:"percent"`
	TargetDate  string          `json:"target_date"`
	Description string          `json:"description"`
}

// CreateProjectRequest drafts a project under an existing contract.
type CreateProjectRequest struct {
	Title      string           `json:"title"`
	Code       string           `json:"code"`
	ContractID string           `json:"contract_id"`
	BuyerID    string           `json:"buyer_id"`
	BuyerName  string           `json:"buyer_name"`
	Value      decimal.Decimal  `json:"value"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Milestones []MilestoneInput `json:"milestones"`
}

// CreateInvoiceRequest raises an invoice against a project or one of its
// completed milestones.
type CreateInvoiceRequest struct {
	ProjectID     string          `json:"project_id"`
	MilestoneName string          `json:"milestone_name,omitempty"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	Actor         ActorInput      `json:"actor"`
}

// ActorInput identifies the acting party on a request.
type ActorInput struct {
	PartyID string `json:"party_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}
