package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invoice-discounting/internal/core"
	"invoice-discounting/internal/store"
)

type appService struct {
	store  store.Store
	engine *core.WorkflowEngine
	clock  func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
// clock may be nil, in which case time.Now is used.
func NewAppService(st store.Store, engine *core.WorkflowEngine, clock func() time.Time) ApplicationService {
	if clock == nil {
		clock = time.Now
	}
	return &appService{store: st, engine: engine, clock: clock}
}

// ── Clients ──────────────────────────────────────────────────────────────────

func (s *appService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResult, error) {
	if req.LegalName == "" {
		return nil, fmt.Errorf("client legal name is required: %w", core.ErrInvalidInput)
	}
	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("credit limit cannot be negative: %w", core.ErrInvalidInput)
	}

	client := core.Client{
		ID:               uuid.NewString(),
		LegalName:        req.LegalName,
		GSTIN:            req.GSTIN,
		PAN:              req.PAN,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		CreditLimit:      req.CreditLimit,
		PaymentTermsDays: req.PaymentTermsDays,
		Active:           true,
		CreatedAt:        s.clock(),
	}
	if err := store.AppendOne(ctx, s.store, store.KeyClients, client); err != nil {
		return nil, err
	}
	return &ClientResult{Client: &client}, nil
}

func (s *appService) UpdateClientContact(ctx context.Context, clientID string, req UpdateClientContactRequest) (*ClientResult, error) {
	return s.mutateClient(ctx, clientID, func(c *core.Client) {
		if req.Email != "" {
			c.Email = req.Email
		}
		if req.Phone != "" {
			c.Phone = req.Phone
		}
		if req.Address != "" {
			c.Address = req.Address
		}
	})
}

func (s *appService) DeactivateClient(ctx context.Context, clientID string) (*ClientResult, error) {
	return s.mutateClient(ctx, clientID, func(c *core.Client) {
		c.Active = false
	})
}

func (s *appService) mutateClient(ctx context.Context, clientID string, apply func(*core.Client)) (*ClientResult, error) {
	clients, err := store.LoadAll[core.Client](ctx, s.store, store.KeyClients)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == clientID {
			apply(&clients[i])
			if err := store.ReplaceAll(ctx, s.store, store.KeyClients, clients); err != nil {
				return nil, err
			}
			c := clients[i]
			return &ClientResult{Client: &c}, nil
		}
	}
	return nil, fmt.Errorf("client %s: %w", clientID, core.ErrNotFound)
}

func (s *appService) ListClients(ctx context.Context) (*ClientListResult, error) {
	clients, err := store.LoadAll[core.Client](ctx, s.store, store.KeyClients)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Clients: clients}, nil
}

// ── Contracts ────────────────────────────────────────────────────────────────

func (s *appService) CreateContract(ctx context.Context, req CreateContractRequest) (*ContractResult, error) {
	if req.Title == "" || req.BuyerID == "" {
		return nil, fmt.Errorf("contract title and buyer are required: %w", core.ErrInvalidInput)
	}
	if !req.Value.IsPositive() {
		return nil, fmt.Errorf("contract value must be positive: %w", core.ErrInvalidInput)
	}

	contract := core.Contract{
		ID:                 uuid.NewString(),
		Title:              req.Title,
		Code:               req.Code,
		BuyerID:            req.BuyerID,
		BuyerName:          req.BuyerName,
		Type:               req.Type,
		Value:              req.Value,
		Currency:           req.Currency,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		PaymentTermsDays:   req.PaymentTermsDays,
		AdvancePercent:     req.AdvancePercent,
		RetentionPercent:   req.RetentionPercent,
		TaxMode:            req.TaxMode,
		InterestRate:       req.InterestRate,
		RegistrationNumber: req.RegistrationNumber,
		CreditScore:        req.CreditScore,
		AnnualRevenue:      req.AnnualRevenue,
		Status:             core.ContractDraft,
		CreatedAt:          s.clock(),
	}
	if err := store.AppendOne(ctx, s.store, store.KeyContracts, contract); err != nil {
		return nil, err
	}
	return &ContractResult{Contract: &contract}, nil
}

func (s *appService) SubmitContract(ctx context.Context, contractID string, actor core.Actor) (*ContractResult, error) {
	c, err := s.engine.SubmitContract(ctx, contractID, actor)
	if err != nil {
		return nil, err
	}
	return &ContractResult{Contract: c}, nil
}

func (s *appService) DecideContract(ctx context.Context, contractID string, decision core.Decision, actor core.Actor, comment string) (*ContractResult, error) {
	c, err := s.engine.DecideContract(ctx, contractID, decision, actor, comment)
	if err != nil {
		return nil, err
	}
	return &ContractResult{Contract: c}, nil
}

func (s *appService) ListContracts(ctx context.Context) (*ContractListResult, error) {
	contracts, err := store.LoadAll[core.Contract](ctx, s.store, store.KeyContracts)
	if err != nil {
		return nil, err
	}
	return &ContractListResult{Contracts: contracts}, nil
}

func (s *appService) ListPendingContracts(ctx context.Context, buyerID string) (*ContractListResult, error) {
	contracts, err := store.LoadAll[core.Contract](ctx, s.store, store.PendingContractsKey(buyerID))
	if err != nil {
		return nil, err
	}
	return &ContractListResult{Contracts: contracts}, nil
}

// ── Projects ─────────────────────────────────────────────────────────────────

func (s *appService) CreateProject(ctx context.Context, req CreateProjectRequest) (*ProjectResult, error) {
	if req.Title == "" || req.ContractID == "" {
		return nil, fmt.Errorf("project title and contract are required: %w", core.ErrInvalidInput)
	}
	if !req.Value.IsPositive() {
		return nil, fmt.Errorf("project value must be positive: %w", core.ErrInvalidInput)
	}

	milestones := make([]core.Milestone, len(req.Milestones))
	for i, m := range req.Milestones {
		if m.Name == "" {
			return nil, fmt.Errorf("milestone %d has no name: %w", i+1, core.ErrInvalidInput)
		}
		milestones[i] = core.Milestone{
			Name:        m.Name,
			Percent:     m.Percent,
			TargetDate:  m.TargetDate,
			Description: m.Description,
			Status:      core.MilestonePending,
		}
	}

	project := core.Project{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Code:       req.Code,
		ContractID: req.ContractID,
		BuyerID:    req.BuyerID,
		BuyerName:  req.BuyerName,
		Value:      req.Value,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     core.ProjectDraft,
		Milestones: milestones,
		CreatedAt:  s.clock(),
	}
	if err := store.AppendOne(ctx, s.store, store.KeyProjects, project); err != nil {
		return nil, err
	}
	return &ProjectResult{Project: &project}, nil
}

func (s *appService) SubmitProject(ctx context.Context, projectID string, actor core.Actor) (*ProjectResult, error) {
	p, err := s.engine.SubmitProject(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}
	return &ProjectResult{Project: p}, nil
}

func (s *appService) ApproveProject(ctx context.Context, projectID string, actor core.Actor) (*ProjectResult, error) {
	p, err := s.engine.ApproveProject(ctx, projectID, actor)
	if err != nil {
		return nil, err
	}
	return &ProjectResult{Project: p}, nil
}

func (s *appService) StartMilestone(ctx context.Context, projectID, milestoneName string, actor core.Actor) (*ProjectResult, error) {
	p, err := s.engine.StartMilestone(ctx, projectID, milestoneName, actor)
	if err != nil {
		return nil, err
	}
	return &ProjectResult{Project: p}, nil
}

func (s *appService) CompleteMilestone(ctx context.Context, projectID, milestoneName string, actor core.Actor) (*ProjectResult, error) {
	p, err := s.engine.CompleteMilestone(ctx, projectID, milestoneName, actor)
	if err != nil {
		return nil, err
	}
	return &ProjectResult{Project: p}, nil
}

func (s *appService) ListProjects(ctx context.Context) (*ProjectListResult, error) {
	projects, err := store.LoadAll[core.Project](ctx, s.store, store.KeyProjects)
	if err != nil {
		return nil, err
	}
	return &ProjectListResult{Projects: projects}, nil
}

// ── Invoices ─────────────────────────────────────────────────────────────────

func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error) {
	number, err := s.nextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = s.clock().Format("2006-01-02")
	}

	inv, err := s.engine.CreateInvoice(ctx, core.CreateInvoiceInput{
		ID:            uuid.NewString(),
		Number:        number,
		ProjectID:     req.ProjectID,
		MilestoneName: req.MilestoneName,
		TaxRate:       req.TaxRate,
		IssueDate:     issueDate,
		DueDate:       req.DueDate,
	}, core.Actor(req.Actor))
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

// nextInvoiceNumber derives a sequential display number from the collection
// size. Not gapless under races; the store has no compare-and-swap.
func (s *appService) nextInvoiceNumber(ctx context.Context) (string, error) {
	invoices, err := store.LoadAll[core.Invoice](ctx, s.store, store.KeyInvoices)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%05d", len(invoices)+1), nil
}

func (s *appService) DecideInvoice(ctx context.Context, invoiceID string, decision core.Decision, actor core.Actor, comment string) (*InvoiceResult, error) {
	inv, err := s.engine.DecideInvoice(ctx, invoiceID, decision, actor, comment)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) ResubmitInvoice(ctx context.Context, invoiceID string, actor core.Actor) (*InvoiceResult, error) {
	inv, err := s.engine.ResubmitInvoice(ctx, invoiceID, actor)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) FundInvoice(ctx context.Context, invoiceID string, actor core.Actor) (*InvoiceResult, error) {
	inv, err := s.engine.FundInvoice(ctx, invoiceID, actor)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) ListInvoices(ctx context.Context) (*InvoiceListResult, error) {
	invoices, err := store.LoadAll[core.Invoice](ctx, s.store, store.KeyInvoices)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices}, nil
}

// ── Pure computations ────────────────────────────────────────────────────────

func (s *appService) QuotePricing(_ context.Context, in core.PricingInput) (*QuoteResult, error) {
	pricing := core.ComputePricing(in)
	return &QuoteResult{Pricing: pricing, Insufficient: pricing.IsZero()}, nil
}

func (s *appService) ScoreRisk(_ context.Context, in core.RiskInput) (*core.RiskAssessment, error) {
	assessment := core.ComputeRiskScore(in)
	return &assessment, nil
}
