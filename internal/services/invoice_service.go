package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"freelanceflow/internal/metrics"
	"freelanceflow/internal/models"
	"freelanceflow/internal/policy"
	"freelanceflow/internal/repository"
)

// InvoiceInput is the flat payload submitted for invoice creation and
// update. PaymentDetails is passed through untouched; it belongs to the
// external payment provider.
type InvoiceInput struct {
	InvoiceNumber  string           `json:"invoice_number"`
	ProjectID      string           `json:"project_id"`
	ClientID       string           `json:"client_id"`
	Amount         *decimal.Decimal `json:"amount"`
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	Status         string           `json:"status"`
	DueDate        string           `json:"due_date"`
	PaidAt         string           `json:"paid_at"`
	PaymentDetails json.RawMessage  `json:"payment_details"`
}

// InvoiceService implements invoice CRUD. total_amount must equal
// amount + tax_amount at write time; it is not re-validated afterwards.
type InvoiceService struct {
	repo     *repository.InvoiceRepository
	projects *repository.ProjectRepository
	users    *repository.UserRepository
	log      *zap.Logger
}

func NewInvoiceService(repo *repository.InvoiceRepository, projects *repository.ProjectRepository, users *repository.UserRepository, log *zap.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, projects: projects, users: users, log: log}
}

// List returns the page of invoices the actor may see, newest-first.
func (s *InvoiceService) List(ctx context.Context, actor policy.Actor, page int) ([]models.Invoice, repository.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, policy.BillingScope(actor), page)
}

// Get returns an invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "invoice")
	}
	return invoice, nil
}

// Create validates the payload and stores a new invoice created by the actor.
func (s *InvoiceService) Create(ctx context.Context, actor policy.Actor, in InvoiceInput) (*models.Invoice, error) {
	if !policy.CanWrite(actor) {
		return nil, ErrForbidden
	}
	parsed, err := s.validate(ctx, in, uuid.Nil)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		InvoiceNumber:  in.InvoiceNumber,
		ProjectID:      parsed.projectID,
		ClientID:       parsed.clientID,
		CreatedBy:      actor.ID,
		Amount:         *in.Amount,
		TaxAmount:      parsed.tax,
		TotalAmount:    *in.TotalAmount,
		Status:         models.InvoiceStatus(in.Status),
		DueDate:        parsed.due,
		PaidAt:         parsed.paidAt,
		PaymentDetails: in.PaymentDetails,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		// The unique index is the backstop for concurrent number claims.
		return nil, duplicateOr(err, "invoice_number", "Invoice number is already in use.", "invoice")
	}
	metrics.RecordWrite("invoice", "create")
	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("actor_id", actor.ID.String()),
	)
	return s.Get(ctx, invoice.ID)
}

// Update validates the payload and replaces the mutable fields of an
// existing invoice. The creator is preserved.
func (s *InvoiceService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in InvoiceInput) (*models.Invoice, error) {
	if !policy.CanWrite(actor) {
		return nil, ErrForbidden
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "invoice")
	}
	parsed, err := s.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}

	existing.InvoiceNumber = in.InvoiceNumber
	existing.ProjectID = parsed.projectID
	existing.Project = nil
	existing.ClientID = parsed.clientID
	existing.Client = nil
	existing.Amount = *in.Amount
	existing.TaxAmount = parsed.tax
	existing.TotalAmount = *in.TotalAmount
	existing.Status = models.InvoiceStatus(in.Status)
	existing.DueDate = parsed.due
	existing.PaidAt = parsed.paidAt
	existing.PaymentDetails = in.PaymentDetails

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, duplicateOr(err, "invoice_number", "Invoice number is already in use.", "invoice")
	}
	metrics.RecordWrite("invoice", "update")
	return s.Get(ctx, id)
}

// Delete removes an invoice.
func (s *InvoiceService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if !policy.CanWrite(actor) {
		return ErrForbidden
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "deleting invoice")
	}
	if rows == 0 {
		return ErrNotFound
	}
	metrics.RecordWrite("invoice", "delete")
	return nil
}

type invoiceFields struct {
	projectID *uuid.UUID
	clientID  uuid.UUID
	tax       decimal.Decimal
	due       time.Time
	paidAt    *time.Time
}

func (s *InvoiceService) validate(ctx context.Context, in InvoiceInput, exclude uuid.UUID) (*invoiceFields, error) {
	fe := fieldErrors{}

	if in.InvoiceNumber == "" {
		fe.add("invoice_number", "Invoice number is required.")
	}
	checkMaxLen(fe, "invoice_number", in.InvoiceNumber, 255)

	projectID := parseOptionalUUID(fe, "project_id", in.ProjectID)
	clientID := parseUUID(fe, "client_id", in.ClientID, "Please select a client.")

	tax := decimal.Zero
	if in.TaxAmount != nil {
		tax = *in.TaxAmount
	}
	if in.Amount == nil {
		fe.add("amount", "Amount is required.")
	} else if in.Amount.IsNegative() {
		fe.add("amount", "Amount must be at least 0.")
	}
	if tax.IsNegative() {
		fe.add("tax_amount", "Tax amount must be at least 0.")
	}
	if in.TotalAmount == nil {
		fe.add("total_amount", "Total amount is required.")
	} else if in.Amount != nil && !in.TotalAmount.Equal(in.Amount.Add(tax)) {
		fe.add("total_amount", "Total amount must equal amount plus tax.")
	}

	if in.Status == "" {
		fe.add("status", "Invoice status is required.")
	} else if !models.ValidInvoiceStatus(in.Status) {
		fe.add("status", "The selected status is invalid.")
	}

	due := parseRequiredDate(fe, "due_date", in.DueDate)
	paidAt := parseDate(fe, "paid_at", in.PaidAt)

	if in.InvoiceNumber != "" {
		taken, err := s.repo.NumberTaken(ctx, in.InvoiceNumber, exclude)
		if err != nil {
			return nil, errors.Wrap(err, "checking invoice number")
		}
		if taken {
			fe.add("invoice_number", "Invoice number is already in use.")
		}
	}
	if projectID != nil {
		ok, err := s.projects.Exists(ctx, *projectID)
		if err != nil {
			return nil, errors.Wrap(err, "checking project")
		}
		if !ok {
			fe.add("project_id", "Selected project is not valid.")
		}
	}
	if clientID != uuid.Nil {
		ok, err := s.users.Exists(ctx, clientID)
		if err != nil {
			return nil, errors.Wrap(err, "checking client")
		}
		if !ok {
			fe.add("client_id", "Selected client is not valid.")
		}
	}

	if err := fe.asError(); err != nil {
		return nil, err
	}
	return &invoiceFields{projectID: projectID, clientID: clientID, tax: tax, due: due, paidAt: paidAt}, nil
}
