package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "draft"
	ProposalSent     ProposalStatus = "sent"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

func ValidProposalStatus(s string) bool {
	switch ProposalStatus(s) {
	case ProposalDraft, ProposalSent, ProposalAccepted, ProposalRejected:
		return true
	}
	return false
}

type Proposal struct {
	ID         uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid"`
	Title      string          `json:"title" gorm:"not null"`
	Content    string          `json:"content" gorm:"type:text;not null"`
	ClientID   uuid.UUID       `json:"client_id" gorm:"type:uuid;not null;index"`
	Client     *User           `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedBy  uuid.UUID       `json:"created_by" gorm:"type:uuid;not null;index"`
	Creator    *User           `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Status     ProposalStatus  `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	ValidUntil *time.Time      `json:"valid_until,omitempty" gorm:"type:date"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
