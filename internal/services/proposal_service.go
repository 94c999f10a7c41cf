package services

import (
	"context"
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

// ProposalInput is the flat payload submitted for proposal creation and update.
type ProposalInput struct {
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	ClientID   string           `json:"client_id"`
	Amount     *decimal.Decimal `json:"amount"`
	Status     string           `json:"status"`
	ValidUntil string           `json:"valid_until"`
}

// ProposalService implements proposal CRUD. The creator is always the
// acting user; it is never taken from the payload.
type ProposalService struct {
	repo  *repository.ProposalRepository
	users *repository.UserRepository
	log   *zap.Logger
}

func NewProposalService(repo *repository.ProposalRepository, users *repository.UserRepository, log *zap.Logger) *ProposalService {
	return &ProposalService{repo: repo, users: users, log: log}
}

// List returns the page of proposals the actor may see, newest-first.
func (s *ProposalService) List(ctx context.Context, actor policy.Actor, page int) ([]models.Proposal, repository.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, policy.BillingScope(actor), page)
}

// Get returns a proposal by ID.
func (s *ProposalService) Get(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	proposal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "proposal")
	}
	return proposal, nil
}

// Create validates the payload and stores a new proposal created by the actor.
func (s *ProposalService) Create(ctx context.Context, actor policy.Actor, in ProposalInput) (*models.Proposal, error) {
	if !policy.CanWrite(actor) {
		return nil, ErrForbidden
	}
	parsed, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	proposal := &models.Proposal{
		Title:      in.Title,
		Content:    in.Content,
		ClientID:   parsed.clientID,
		CreatedBy:  actor.ID,
		Amount:     *in.Amount,
		Status:     models.ProposalStatus(in.Status),
		ValidUntil: parsed.validUntil,
	}
	if err := s.repo.Create(ctx, proposal); err != nil {
		return nil, errors.Wrap(err, "creating proposal")
	}
	metrics.RecordWrite("proposal", "create")
	s.log.Info("proposal created",
		zap.String("proposal_id", proposal.ID.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return s.Get(ctx, proposal.ID)
}

// Update validates the payload and replaces the mutable fields of an
// existing proposal. The creator is preserved.
func (s *ProposalService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in ProposalInput) (*models.Proposal, error) {
	if !policy.CanWrite(actor) {
		return nil, ErrForbidden
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "proposal")
	}
	parsed, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Content = in.Content
	existing.ClientID = parsed.clientID
	existing.Client = nil
	existing.Amount = *in.Amount
	existing.Status = models.ProposalStatus(in.Status)
	existing.ValidUntil = parsed.validUntil

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, errors.Wrap(err, "updating proposal")
	}
	metrics.RecordWrite("proposal", "update")
	return s.Get(ctx, id)
}

// Delete removes a proposal.
func (s *ProposalService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if !policy.CanWrite(actor) {
		return ErrForbidden
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "deleting proposal")
	}
	if rows == 0 {
		return ErrNotFound
	}
	metrics.RecordWrite("proposal", "delete")
	return nil
}

type proposalFields struct {
	clientID   uuid.UUID
	validUntil *time.Time
}

func (s *ProposalService) validate(ctx context.Context, in ProposalInput) (*proposalFields, error) {
	fe := fieldErrors{}

	if in.Title == "" {
		fe.add("title", "Proposal title is required.")
	}
	checkMaxLen(fe, "title", in.Title, 255)
	if in.Content == "" {
		fe.add("content", "Proposal content is required.")
	}

	clientID := parseUUID(fe, "client_id", in.ClientID, "Please select a client.")

	if in.Amount == nil {
		fe.add("amount", "Amount is required.")
	} else if in.Amount.IsNegative() {
		fe.add("amount", "Amount must be at least 0.")
	}

	if in.Status == "" {
		fe.add("status", "Proposal status is required.")
	} else if !models.ValidProposalStatus(in.Status) {
		fe.add("status", "The selected status is invalid.")
	}

	validUntil := parseDate(fe, "valid_until", in.ValidUntil)

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
	return &proposalFields{clientID: clientID, validUntil: validUntil}, nil
}
