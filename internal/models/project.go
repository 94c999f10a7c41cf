package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ValidProjectStatus reports whether s is one of the known project statuses.
func ValidProjectStatus(s string) bool {
	switch ProjectStatus(s) {
	case ProjectPending, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID               uuid.UUID        `json:"id" gorm:"primaryKey;type:uuid"`
	Name             string           `json:"name" gorm:"not null"`
	Description      string           `json:"description" gorm:"type:text"`
	ClientID         uuid.UUID        `json:"client_id" gorm:"type:uuid;not null;index"`
	Client           *User            `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	ProjectManagerID uuid.UUID        `json:"project_manager_id" gorm:"type:uuid;not null;index"`
	ProjectManager   *User            `json:"project_manager,omitempty" gorm:"foreignKey:ProjectManagerID;constraint:OnDelete:CASCADE"`
	Budget           *decimal.Decimal `json:"budget,omitempty" gorm:"type:numeric(10,2)"`
	Status           ProjectStatus    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	StartDate        *time.Time       `json:"start_date,omitempty" gorm:"type:date"`
	EndDate          *time.Time       `json:"end_date,omitempty" gorm:"type:date"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	Tasks       []Task       `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
	Invoices    []Invoice    `json:"invoices,omitempty" gorm:"foreignKey:ProjectID"`
	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:ProjectID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
