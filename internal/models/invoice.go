package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

func ValidInvoiceStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice carries billing data for a client, optionally tied to a project.
// PaymentDetails is an opaque blob written by the external payment provider
// and is never interpreted here.
type Invoice struct {
	ID             uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid"`
	InvoiceNumber  string          `json:"invoice_number" gorm:"uniqueIndex;not null"`
	ProjectID      *uuid.UUID      `json:"project_id" gorm:"type:uuid;index"`
	Project        *Project        `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	ClientID       uuid.UUID       `json:"client_id" gorm:"type:uuid;not null;index"`
	Client         *User           `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedBy      uuid.UUID       `json:"created_by" gorm:"type:uuid;not null;index"`
	Creator        *User           `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:numeric(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	Status         InvoiceStatus   `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	DueDate        time.Time       `json:"due_date" gorm:"type:date;not null"`
	PaidAt         *time.Time      `json:"paid_at,omitempty" gorm:"type:date"`
	PaymentDetails json.RawMessage `json:"payment_details,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
