package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freelanceflow/internal/models"
)

// AttachmentRepository provides methods to interact with the Attachment model in the database.
type AttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository instance with the provided GORM database connection.
func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create creates a new Attachment metadata row.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// Get retrieves an Attachment by its ID.
func (r *AttachmentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Attachment, error) {
	var attachment models.Attachment
	err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error
	return &attachment, err
}

// ListByProject retrieves all attachments of a project, newest-first.
func (r *AttachmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}

// Delete removes an Attachment row by ID. Returns the number of rows removed.
func (r *AttachmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Attachment{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
