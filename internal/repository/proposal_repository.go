package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
)

// ProposalRepository provides methods to interact with the Proposal model in the database.
type ProposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new ProposalRepository instance with the provided GORM database connection.
func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create creates a new Proposal in the database.
func (r *ProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

// Get retrieves a Proposal by its ID with client and creator summaries.
func (r *ProposalRepository) Get(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Creator").
		First(&proposal, "id = ?", id).Error
	return &proposal, err
}

// Update persists changes to an existing Proposal.
func (r *ProposalRepository) Update(ctx context.Context, proposal *models.Proposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

// Delete removes a Proposal by ID. Returns the number of rows removed.
func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Proposal{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// List retrieves visible Proposals newest-first, paginated.
func (r *ProposalRepository) List(ctx context.Context, scope Scope, page int) ([]models.Proposal, PageMeta, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Proposal{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}
	var proposals []models.Proposal
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Client").
		Preload("Creator").
		Order("created_at DESC").
		Limit(DefaultPerPage).
		Offset(offset(page)).
		Find(&proposals).Error
	return proposals, pageMeta(page, total), err
}

// Count returns the total number of proposals.
func (r *ProposalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Proposal{}).Count(&count).Error
	return count, err
}
