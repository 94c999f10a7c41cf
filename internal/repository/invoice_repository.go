package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
)

// InvoiceRepository provides methods to interact with the Invoice model in the database.
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new InvoiceRepository instance with the provided GORM database connection.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates a new Invoice in the database.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// Get retrieves an Invoice by its ID with project, client and creator summaries.
func (r *InvoiceRepository) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Client").
		Preload("Creator").
		First(&invoice, "id = ?", id).Error
	return &invoice, err
}

// Update persists changes to an existing Invoice.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete removes an Invoice by ID. Returns the number of rows removed.
func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// List retrieves visible Invoices newest-first, paginated.
func (r *InvoiceRepository) List(ctx context.Context, scope Scope, page int) ([]models.Invoice, PageMeta, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, PageMeta{}, err
	}
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Project").
		Preload("Client").
		Preload("Creator").
		Order("created_at DESC").
		Limit(DefaultPerPage).
		Offset(offset(page)).
		Find(&invoices).Error
	return invoices, pageMeta(page, total), err
}

// Count returns the number of invoices matching the optional status filter.
func (r *InvoiceRepository) Count(ctx context.Context, status models.InvoiceStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Invoice{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// NumberTaken reports whether another invoice already uses the number. The
// exclude ID lets updates skip the record being edited.
func (r *InvoiceRepository) NumberTaken(ctx context.Context, number string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoice_number = ? AND id <> ?", number, exclude).
		Count(&count).Error
	return count > 0, err
}
