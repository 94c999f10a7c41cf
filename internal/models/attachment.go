package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is the metadata row for a file stored in object storage.
// The blob itself lives in MinIO under StorageKey.
type Attachment struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	Project     *Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	FileName    string     `json:"file_name" gorm:"not null"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	StorageKey  string     `json:"-" gorm:"not null"`
	UploadedBy  *uuid.UUID `json:"uploaded_by" gorm:"type:uuid;index"`
	Uploader    *User      `json:"uploader,omitempty" gorm:"foreignKey:UploadedBy;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
