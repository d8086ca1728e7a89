package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a seller-registered counterparty. Identity and tax fields are
// frozen once a contract references the client; contact fields stay mutable.
// Clients are deactivated, never deleted.
type Client struct {
	ID               string          `json:"id"`
	LegalName        string          `json:"legal_name"`
	GSTIN            string          `json:"gstin"`
	PAN              string          `json:"pan"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	PaymentTermsDays int             `json:"payment_terms_days"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
}

type ContractStatus string

const (
	ContractDraft        ContractStatus = "DRAFT"
	ContractPending      ContractStatus = "PENDING"
	ContractApproved     ContractStatus = "APPROVED"
	ContractRejected     ContractStatus = "REJECTED"
	ContractModification ContractStatus = "MODIFICATION_REQUESTED"
)

// ApprovalAction is the verb recorded in an approval-history entry.
type ApprovalAction string

const (
	ActionSubmit         ApprovalAction = "SUBMIT"
	ActionApprove        ApprovalAction = "APPROVE"
	ActionReject         ApprovalAction = "REJECT"
	ActionRequestChanges ApprovalAction = "REQUEST_MODIFICATION"
	ActionResubmit       ApprovalAction = "RESUBMIT"
	ActionFund           ApprovalAction = "FUND"
)

// Actor identifies who performed a workflow action.
type Actor struct {
	PartyID string `json:"party_id"`
	Name    string `json:"name"`
	Role    string `json:"role"` // "seller" or "buyer"
}

// ApprovalEntry is one append-only audit record. Entries are never edited or
// removed; an entity's status always equals the resulting status of its last
// entry (or the draft status if the history is empty).
type ApprovalEntry struct {
	Action    ApprovalAction `json:"action"`
	Status    string         `json:"status"`
	Comment   string         `json:"comment,omitempty"`
	Actor     Actor          `json:"actor"`
	Timestamp time.Time      `json:"timestamp"`
}

// Contract is a seller-drafted discounting agreement addressed to a buyer.
// Status moves only through WorkflowEngine transitions.
type Contract struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Code               string          `json:"code"`
	BuyerID            string          `json:"buyer_id"`
	BuyerName          string          `json:"buyer_name"`
	Type               string          `json:"type"`
	Value              decimal.Decimal `json:"value"`
	Currency           string          `json:"currency"`
	StartDate          string          `json:"start_date"` // YYYY-MM-DD
	EndDate            string          `json:"end_date"`
	PaymentTermsDays   int             `json:"payment_terms_days"`
	AdvancePercent     decimal.Decimal `json:"advance_percent"`
	RetentionPercent   decimal.Decimal `json:"retention_percent"`
	TaxMode            string          `json:"tax_mode"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	RegistrationNumber string          `json:"registration_number"`
	CreditScore        int             `json:"credit_score"`
	AnnualRevenue      decimal.Decimal `json:"annual_revenue"`
	Status             ContractStatus  `json:"status"`
	Risk               *RiskAssessment `json:"risk,omitempty"`
	ApprovalHistory    []ApprovalEntry `json:"approval_history,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "DRAFT"
	ProjectPending    ProjectStatus = "PENDING_APPROVAL"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "PENDING"
	MilestoneInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneCompleted  MilestoneStatus = "COMPLETED"
)

// Milestone is a percentage-weighted deliverable of a Project. InvoiceID is
// set at most once, when the milestone is invoiced.
type Milestone struct {
	Name        string          `json:"name"`
	Percent     decimal.Decimal `json:"percent"`
	TargetDate  string          `json:"target_date"`
	Description string          `json:"description,omitempty"`
	Status      MilestoneStatus `json:"status"`
	InvoiceID   string          `json:"invoice_id,omitempty"`
}

// Project belongs to the seller context and references an approved Contract.
// Read-only to the buyer.
type Project struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Code       string          `json:"code"`
	ContractID string          `json:"contract_id"`
	BuyerID    string          `json:"buyer_id"`
	BuyerName  string          `json:"buyer_name"`
	Value      decimal.Decimal `json:"value"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Status     ProjectStatus   `json:"status"`
	Milestones []Milestone     `json:"milestones"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MilestonePercentTotal sums the milestone percentages.
func (p *Project) MilestonePercentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Milestones {
		total = total.Add(m.Percent)
	}
	return total
}

// FindMilestone returns a pointer into p.Milestones for the named milestone,
// or nil if absent.
func (p *Project) FindMilestone(name string) *Milestone {
	for i := range p.Milestones {
		if p.Milestones[i].Name == name {
			return &p.Milestones[i]
		}
	}
	return nil
}

type InvoiceStatus string

const (
	InvoicePendingApproval InvoiceStatus = "PENDING_BUYER_APPROVAL"
	InvoiceApproved        InvoiceStatus = "APPROVED"
	InvoiceRejected        InvoiceStatus = "REJECTED"
	InvoiceFunded          InvoiceStatus = "FUNDED"
	InvoiceModification    InvoiceStatus = "MODIFICATION_REQUESTED"
)

// Invoice is raised by the seller against a project (or one of its completed
// milestones) and decided by the buyer. Pricing is a frozen snapshot taken at
// creation time; later pricing parameter changes never alter an existing
// invoice. Once FUNDED the invoice is immutable except for payment tracking.
type Invoice struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	ProjectID       string          `json:"project_id"`
	MilestoneName   string          `json:"milestone_name,omitempty"`
	BuyerID         string          `json:"buyer_id"`
	BuyerName       string          `json:"buyer_name"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	IssueDate       string          `json:"issue_date"`
	DueDate         string          `json:"due_date"`
	Status          InvoiceStatus   `json:"status"`
	Pricing         PricingResult   `json:"pricing"`
	ApprovalHistory []ApprovalEntry `json:"approval_history,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
