package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"invoice-discounting/internal/bus"
	"invoice-discounting/internal/store"
)

// Event names published on the notification bus, one per committed
// transition.
const (
	EventContractSubmitted = "contract-submitted"
	EventContractDecided   = "contract-decided"
	EventProjectSubmitted  = "project-submitted"
	EventProjectApproved   = "project-approved"
	EventProjectCompleted  = "project-completed"
	EventInvoiceCreated    = "invoice-created"
	EventInvoiceDecided    = "invoice-decided"
	EventInvoiceFunded     = "invoice-funded"
)

// Decision is a buyer's verdict on a pending contract or invoice.
type Decision string

const (
	DecisionApprove        Decision = "approve"
	DecisionReject         Decision = "reject"
	DecisionRequestChanges Decision = "request-modification"
)

// Notification is the counterpart-facing payload attached to decision
// events; the UI renders it as a toast or inbox row.
type Notification struct {
	EntityID    string `json:"entity_id"`
	EntityTitle string `json:"entity_title"`
	Status      string `json:"status"`
	Actor       Actor  `json:"actor"`
	Comment     string `json:"comment,omitempty"`
	// Recipient is the party role that should see the notification:
	// seller actions notify the buyer and vice versa.
	Recipient string    `json:"recipient"`
	At        time.Time `json:"at"`
}

// ContractSubmittedEvent is the payload of contract-submitted.
type ContractSubmittedEvent struct {
	Contract Contract `json:"contract"`
}

// ContractDecidedEvent is the payload of contract-decided.
type ContractDecidedEvent struct {
	Contract     Contract     `json:"contract"`
	Decision     Decision     `json:"decision"`
	Notification Notification `json:"notification"`
}

// ProjectEvent is the payload of the project-* events.
type ProjectEvent struct {
	Project Project `json:"project"`
}

// InvoiceCreatedEvent is the payload of invoice-created.
type InvoiceCreatedEvent struct {
	Invoice Invoice `json:"invoice"`
}

// InvoiceDecidedEvent is the payload of invoice-decided and invoice-funded.
type InvoiceDecidedEvent struct {
	Invoice      Invoice      `json:"invoice"`
	Decision     Decision     `json:"decision"`
	Notification Notification `json:"notification"`
}

// CreateInvoiceInput carries the seller-entered fields for a new invoice.
// ID and Number are minted by the caller; financial inputs for the pricing
// snapshot come from the project's contract.
type CreateInvoiceInput struct {
	ID            string
	Number        string
	ProjectID     string
	MilestoneName string // empty for a whole-project invoice
	TaxRate       decimal.Decimal
	IssueDate     string
	DueDate       string
}

// WorkflowEngine is the only mutator of entity status. Every transition is
// validated before any store write, appends one audit entry where the entity
// carries a history, and publishes exactly one bus event after the write.
// Publication is fire-and-forget: delivery is not guaranteed and never
// retried.
type WorkflowEngine struct {
	store store.Store
	bus   *bus.Bus
	clock func() time.Time
}

// NewWorkflowEngine wires the engine to its storage and notification ports.
// clock may be nil, in which case time.Now is used.
func NewWorkflowEngine(st store.Store, b *bus.Bus, clock func() time.Time) *WorkflowEngine {
	if clock == nil {
		clock = time.Now
	}
	return &WorkflowEngine{store: st, bus: b, clock: clock}
}

// ── Contracts ────────────────────────────────────────────────────────────────

// SubmitContract moves a DRAFT or MODIFICATION_REQUESTED contract to
// PENDING, snapshots its risk assessment, and surfaces it in the buyer's
// pending view.
func (w *WorkflowEngine) SubmitContract(ctx context.Context, contractID string, actor Actor) (*Contract, error) {
	contracts, err := store.LoadAll[Contract](ctx, w.store, store.KeyContracts)
	if err != nil {
		return nil, err
	}
	i := findContract(contracts, contractID)
	if i < 0 {
		return nil, fmt.Errorf("contract %s: %w", contractID, ErrNotFound)
	}
	c := &contracts[i]

	action := ActionSubmit
	switch c.Status {
	case ContractDraft:
	case ContractModification:
		action = ActionResubmit
	default:
		return nil, fmt.Errorf("contract %s cannot be submitted: status is %s (must be %s or %s): %w",
			contractID, c.Status, ContractDraft, ContractModification, ErrIllegalTransition)
	}

	risk := ComputeRiskScore(RiskInput{
		CreditScore:        c.CreditScore,
		AnnualRevenue:      c.AnnualRevenue,
		ContractValue:      c.Value,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		InterestRate:       c.InterestRate,
		RegistrationNumber: c.RegistrationNumber,
	})
	c.Risk = &risk
	w.appendContractEntry(c, action, ContractPending, "", actor)

	if err := store.ReplaceAll(ctx, w.store, store.KeyContracts, contracts); err != nil {
		return nil, err
	}
	if err := w.upsertPendingContract(ctx, *c); err != nil {
		return nil, err
	}

	w.bus.Publish(EventContractSubmitted, ContractSubmittedEvent{Contract: *c})
	snapshot := *c
	return &snapshot, nil
}

// DecideContract records the buyer's verdict on a PENDING contract.
// Reject and request-modification require a non-empty comment. APPROVED and
// REJECTED are terminal; MODIFICATION_REQUESTED returns control to the
// seller.
func (w *WorkflowEngine) DecideContract(ctx context.Context, contractID string, decision Decision, actor Actor, comment string) (*Contract, error) {
	next, action, err := contractDecisionTarget(decision, comment)
	if err != nil {
		return nil, err
	}

	contracts, err := store.LoadAll[Contract](ctx, w.store, store.KeyContracts)
	if err != nil {
		return nil, err
	}
	i := findContract(contracts, contractID)
	if i < 0 {
		return nil, fmt.Errorf("contract %s: %w", contractID, ErrNotFound)
	}
	c := &contracts[i]
	if c.Status != ContractPending {
		return nil, fmt.Errorf("contract %s cannot be decided: status is %s (must be %s): %w",
			contractID, c.Status, ContractPending, ErrIllegalTransition)
	}

	w.appendContractEntry(c, action, next, comment, actor)

	if err := store.ReplaceAll(ctx, w.store, store.KeyContracts, contracts); err != nil {
		return nil, err
	}
	if err := w.removePendingContract(ctx, c.BuyerID, c.ID); err != nil {
		return nil, err
	}

	w.bus.Publish(EventContractDecided, ContractDecidedEvent{
		Contract: *c,
		Decision: decision,
		Notification: Notification{
			EntityID:    c.ID,
			EntityTitle: c.Title,
			Status:      string(c.Status),
			Actor:       actor,
			Comment:     comment,
			Recipient:   "seller",
			At:          w.clock(),
		},
	})
	snapshot := *c
	return &snapshot, nil
}

func contractDecisionTarget(decision Decision, comment string) (ContractStatus, ApprovalAction, error) {
	switch decision {
	case DecisionApprove:
		return ContractApproved, ActionApprove, nil
	case DecisionReject:
		if comment == "" {
			return "", "", fmt.Errorf("rejection requires a reason: %w", ErrInvalidInput)
		}
		return ContractRejected, ActionReject, nil
	case DecisionRequestChanges:
		if comment == "" {
			return "", "", fmt.Errorf("modification request requires a comment: %w", ErrInvalidInput)
		}
		return ContractModification, ActionRequestChanges, nil
	default:
		return "", "", fmt.Errorf("unknown decision %q: %w", decision, ErrInvalidInput)
	}
}

// appendContractEntry applies the transition and its audit record together
// so the status-equals-last-entry invariant cannot drift.
func (w *WorkflowEngine) appendContractEntry(c *Contract, action ApprovalAction, next ContractStatus, comment string, actor Actor) {
	c.Status = next
	c.ApprovalHistory = append(c.ApprovalHistory, ApprovalEntry{
		Action:    action,
		Status:    string(next),
		Comment:   comment,
		Actor:     actor,
		Timestamp: w.clock(),
	})
}

func (w *WorkflowEngine) upsertPendingContract(ctx context.Context, c Contract) error {
	key := store.PendingContractsKey(c.BuyerID)
	pending, err := store.LoadAll[Contract](ctx, w.store, key)
	if err != nil {
		return err
	}
	if i := findContract(pending, c.ID); i >= 0 {
		pending[i] = c
	} else {
		pending = append(pending, c)
	}
	return store.ReplaceAll(ctx, w.store, key, pending)
}

func (w *WorkflowEngine) removePendingContract(ctx context.Context, buyerID, contractID string) error {
	key := store.PendingContractsKey(buyerID)
	pending, err := store.LoadAll[Contract](ctx, w.store, key)
	if err != nil {
		return err
	}
	kept := pending[:0]
	for _, p := range pending {
		if p.ID != contractID {
			kept = append(kept, p)
		}
	}
	return store.ReplaceAll(ctx, w.store, key, kept)
}

func findContract(contracts []Contract, id string) int {
	for i := range contracts {
		if contracts[i].ID == id {
			return i
		}
	}
	return -1
}

// ── Projects ─────────────────────────────────────────────────────────────────

// SubmitProject moves a DRAFT project to PENDING_APPROVAL. The referenced
// contract must be APPROVED and the milestone percentages must sum to
// exactly 100; both are checked before any write.
func (w *WorkflowEngine) SubmitProject(ctx context.Context, projectID string, actor Actor) (*Project, error) {
	projects, err := store.LoadAll[Project](ctx, w.store, store.KeyProjects)
	if err != nil {
		return nil, err
	}
	i := findProject(projects, projectID)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	p := &projects[i]
	if p.Status != ProjectDraft {
		return nil, fmt.Errorf("project %s cannot be submitted: status is %s (must be %s): %w",
			projectID, p.Status, ProjectDraft, ErrIllegalTransition)
	}

	if total := p.MilestonePercentTotal(); !total.Equal(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("project %s milestone percentages sum to %s, must be exactly 100: %w",
			projectID, total, ErrIllegalTransition)
	}

	contracts, err := store.LoadAll[Contract](ctx, w.store, store.KeyContracts)
	if err != nil {
		return nil, err
	}
	ci := findContract(contracts, p.ContractID)
	if ci < 0 {
		return nil, fmt.Errorf("project %s references contract %s: %w", projectID, p.ContractID, ErrNotFound)
	}
	if contracts[ci].Status != ContractApproved {
		return nil, fmt.Errorf("project %s cannot be submitted: contract %s is %s (must be %s): %w",
			projectID, p.ContractID, contracts[ci].Status, ContractApproved, ErrIllegalTransition)
	}

	p.Status = ProjectPending
	if err := store.ReplaceAll(ctx, w.store, store.KeyProjects, projects); err != nil {
		return nil, err
	}

	w.bus.Publish(EventProjectSubmitted, ProjectEvent{Project: *p})
	snapshot := *p
	return &snapshot, nil
}

// ApproveProject is the buyer accepting a PENDING_APPROVAL project, which
// goes straight to IN_PROGRESS.
func (w *WorkflowEngine) ApproveProject(ctx context.Context, projectID string, actor Actor) (*Project, error) {
	projects, err := store.LoadAll[Project](ctx, w.store, store.KeyProjects)
	if err != nil {
		return nil, err
	}
	i := findProject(projects, projectID)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	p := &projects[i]
	if p.Status != ProjectPending {
		return nil, fmt.Errorf("project %s cannot be approved: status is %s (must be %s): %w",
			projectID, p.Status, ProjectPending, ErrIllegalTransition)
	}

	p.Status = ProjectInProgress
	if err := store.ReplaceAll(ctx, w.store, store.KeyProjects, projects); err != nil {
		return nil, err
	}

	w.bus.Publish(EventProjectApproved, ProjectEvent{Project: *p})
	snapshot := *p
	return &snapshot, nil
}

// StartMilestone marks a pending milestone of an in-progress project as
// being worked on.
func (w *WorkflowEngine) StartMilestone(ctx context.Context, projectID, milestoneName string, actor Actor) (*Project, error) {
	return w.transitionMilestone(ctx, projectID, milestoneName, MilestonePending, MilestoneInProgress)
}

// CompleteMilestone marks a milestone COMPLETED. When the last milestone
// completes, the project itself moves to COMPLETED and project-completed is
// published.
func (w *WorkflowEngine) CompleteMilestone(ctx context.Context, projectID, milestoneName string, actor Actor) (*Project, error) {
	return w.transitionMilestone(ctx, projectID, milestoneName, MilestoneInProgress, MilestoneCompleted)
}

func (w *WorkflowEngine) transitionMilestone(ctx context.Context, projectID, milestoneName string, from, to MilestoneStatus) (*Project, error) {
	projects, err := store.LoadAll[Project](ctx, w.store, store.KeyProjects)
	if err != nil {
		return nil, err
	}
	i := findProject(projects, projectID)
	if i < 0 {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	p := &projects[i]
	if p.Status != ProjectInProgress {
		return nil, fmt.Errorf("milestone %q of project %s cannot change: project status is %s (must be %s): %w",
			milestoneName, projectID, p.Status, ProjectInProgress, ErrIllegalTransition)
	}

	m := p.FindMilestone(milestoneName)
	if m == nil {
		return nil, fmt.Errorf("project %s has no milestone %q: %w", projectID, milestoneName, ErrNotFound)
	}
	// A never-started milestone may be completed directly.
	if m.Status != from && !(to == MilestoneCompleted && m.Status == MilestonePending) {
		return nil, fmt.Errorf("milestone %q is %s (must be %s): %w", milestoneName, m.Status, from, ErrIllegalTransition)
	}
	m.Status = to

	completed := to == MilestoneCompleted && allMilestonesCompleted(p)
	if completed {
		p.Status = ProjectCompleted
	}

	if err := store.ReplaceAll(ctx, w.store, store.KeyProjects, projects); err != nil {
		return nil, err
	}
	if completed {
		w.bus.Publish(EventProjectCompleted, ProjectEvent{Project: *p})
	}
	snapshot := *p
	return &snapshot, nil
}

func allMilestonesCompleted(p *Project) bool {
	for _, m := range p.Milestones {
		if m.Status != MilestoneCompleted {
			return false
		}
	}
	return len(p.Milestones) > 0
}

func findProject(projects []Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// ── Invoices ─────────────────────────────────────────────────────────────────

// CreateInvoice raises an invoice directly in PENDING_BUYER_APPROVAL. A
// milestone invoice requires the milestone to be COMPLETED and not yet
// invoiced; a second attempt fails with ErrDuplicateInvoice and leaves the
// first reference untouched. The pricing snapshot is computed here, from
// the contract's financial attributes, and never recomputed afterwards.
func (w *WorkflowEngine) CreateInvoice(ctx context.Context, in CreateInvoiceInput, actor Actor) (*Invoice, error) {
	if in.ID == "" || in.Number == "" || in.ProjectID == "" {
		return nil, fmt.Errorf("invoice id, number, and project are required: %w", ErrInvalidInput)
	}

	projects, err := store.LoadAll[Project](ctx, w.store, store.KeyProjects)
	if err != nil {
		return nil, err
	}
	pi := findProject(projects, in.ProjectID)
	if pi < 0 {
		return nil, fmt.Errorf("project %s: %w", in.ProjectID, ErrNotFound)
	}
	p := &projects[pi]
	if p.Status != ProjectInProgress && p.Status != ProjectCompleted {
		return nil, fmt.Errorf("project %s cannot be invoiced: status is %s: %w",
			in.ProjectID, p.Status, ErrIllegalTransition)
	}

	subtotal := p.Value
	var milestone *Milestone
	if in.MilestoneName != "" {
		milestone = p.FindMilestone(in.MilestoneName)
		if milestone == nil {
			return nil, fmt.Errorf("project %s has no milestone %q: %w", in.ProjectID, in.MilestoneName, ErrNotFound)
		}
		if milestone.Status != MilestoneCompleted {
			return nil, fmt.Errorf("milestone %q is %s (must be %s before invoicing): %w",
				in.MilestoneName, milestone.Status, MilestoneCompleted, ErrIllegalTransition)
		}
		if milestone.InvoiceID != "" {
			return nil, fmt.Errorf("milestone %q is already invoiced by %s: %w",
				in.MilestoneName, milestone.InvoiceID, ErrDuplicateInvoice)
		}
		subtotal = p.Value.Mul(milestone.Percent).Div(decimal.NewFromInt(100))
	}

	contracts, err := store.LoadAll[Contract](ctx, w.store, store.KeyContracts)
	if err != nil {
		return nil, err
	}
	ci := findContract(contracts, p.ContractID)
	if ci < 0 {
		return nil, fmt.Errorf("project %s references contract %s: %w", in.ProjectID, p.ContractID, ErrNotFound)
	}
	contract := contracts[ci]

	taxAmount := subtotal.Mul(in.TaxRate).Div(decimal.NewFromInt(100))
	total := subtotal.Add(taxAmount)

	now := w.clock()
	inv := Invoice{
		ID:            in.ID,
		Number:        in.Number,
		ProjectID:     p.ID,
		MilestoneName: in.MilestoneName,
		BuyerID:       p.BuyerID,
		BuyerName:     p.BuyerName,
		Subtotal:      subtotal,
		TaxRate:       in.TaxRate,
		TaxAmount:     taxAmount,
		Total:         total,
		IssueDate:     in.IssueDate,
		DueDate:       in.DueDate,
		Status:        InvoicePendingApproval,
		Pricing: ComputePricing(PricingInput{
			InvoiceValue:    total,
			PaymentTermDays: contract.PaymentTermsDays,
			CreditScore:     contract.CreditScore,
			AnnualRevenue:   contract.AnnualRevenue,
		}),
		ApprovalHistory: []ApprovalEntry{{
			Action:    ActionSubmit,
			Status:    string(InvoicePendingApproval),
			Actor:     actor,
			Timestamp: now,
		}},
		CreatedAt: now,
	}

	if err := store.AppendOne(ctx, w.store, store.KeyInvoices, inv); err != nil {
		return nil, err
	}
	if milestone != nil {
		milestone.InvoiceID = inv.ID
		if err := store.ReplaceAll(ctx, w.store, store.KeyProjects, projects); err != nil {
			return nil, err
		}
	}

	w.bus.Publish(EventInvoiceCreated, InvoiceCreatedEvent{Invoice: inv})
	return &inv, nil
}

// DecideInvoice records the buyer's verdict on a PENDING_BUYER_APPROVAL
// invoice. Reject and request-modification require a non-empty comment.
func (w *WorkflowEngine) DecideInvoice(ctx context.Context, invoiceID string, decision Decision, actor Actor, comment string) (*Invoice, error) {
	next, action, err := invoiceDecisionTarget(decision, comment)
	if err != nil {
		return nil, err
	}
	return w.transitionInvoice(ctx, invoiceID, InvoicePendingApproval, next, action, actor, comment, decision, EventInvoiceDecided)
}

// ResubmitInvoice returns a MODIFICATION_REQUESTED invoice to the buyer's
// queue after the seller's edits.
func (w *WorkflowEngine) ResubmitInvoice(ctx context.Context, invoiceID string, actor Actor) (*Invoice, error) {
	return w.transitionInvoice(ctx, invoiceID, InvoiceModification, InvoicePendingApproval,
		ActionResubmit, actor, "", "", EventInvoiceCreated)
}

// FundInvoice disburses an APPROVED invoice. FUNDED is terminal; the
// invoice is immutable afterwards except for payment-tracking metadata.
func (w *WorkflowEngine) FundInvoice(ctx context.Context, invoiceID string, actor Actor) (*Invoice, error) {
	return w.transitionInvoice(ctx, invoiceID, InvoiceApproved, InvoiceFunded,
		ActionFund, actor, "", DecisionApprove, EventInvoiceFunded)
}

func invoiceDecisionTarget(decision Decision, comment string) (InvoiceStatus, ApprovalAction, error) {
	switch decision {
	case DecisionApprove:
		return InvoiceApproved, ActionApprove, nil
	case DecisionReject:
		if comment == "" {
			return "", "", fmt.Errorf("rejection requires a reason: %w", ErrInvalidInput)
		}
		return InvoiceRejected, ActionReject, nil
	case DecisionRequestChanges:
		if comment == "" {
			return "", "", fmt.Errorf("modification request requires a comment: %w", ErrInvalidInput)
		}
		return InvoiceModification, ActionRequestChanges, nil
	default:
		return "", "", fmt.Errorf("unknown decision %q: %w", decision, ErrInvalidInput)
	}
}

func (w *WorkflowEngine) transitionInvoice(ctx context.Context, invoiceID string, from, to InvoiceStatus,
	action ApprovalAction, actor Actor, comment string, decision Decision, eventName string) (*Invoice, error) {

	invoices, err := store.LoadAll[Invoice](ctx, w.store, store.KeyInvoices)
	if err != nil {
		return nil, err
	}
	i := -1
	for j := range invoices {
		if invoices[j].ID == invoiceID {
			i = j
			break
		}
	}
	if i < 0 {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, ErrNotFound)
	}
	inv := &invoices[i]
	if inv.Status != from {
		return nil, fmt.Errorf("invoice %s cannot move to %s: status is %s (must be %s): %w",
			invoiceID, to, inv.Status, from, ErrIllegalTransition)
	}

	now := w.clock()
	inv.Status = to
	inv.ApprovalHistory = append(inv.ApprovalHistory, ApprovalEntry{
		Action:    action,
		Status:    string(to),
		Comment:   comment,
		Actor:     actor,
		Timestamp: now,
	})
	if to == InvoiceFunded {
		inv.PaidAt = &now
	}

	if err := store.ReplaceAll(ctx, w.store, store.KeyInvoices, invoices); err != nil {
		return nil, err
	}

	switch eventName {
	case EventInvoiceCreated:
		w.bus.Publish(eventName, InvoiceCreatedEvent{Invoice: *inv})
	default:
		w.bus.Publish(eventName, InvoiceDecidedEvent{
			Invoice:  *inv,
			Decision: decision,
			Notification: Notification{
				EntityID:    inv.ID,
				EntityTitle: inv.Number,
				Status:      string(inv.Status),
				Actor:       actor,
				Comment:     comment,
				Recipient:   "seller",
				At:          now,
			},
		})
	}
	snapshot := *inv
	return &snapshot, nil
}
