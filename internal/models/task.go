package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskPending, TaskInProgress, TaskReview, TaskCompleted:
		return true
	}
	return false
}

func ValidTaskPriority(s string) bool {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID             uuid.UUID        `json:"id" gorm:"primaryKey;type:uuid"`
	Title          string           `json:"title" gorm:"not null"`
	Description    string           `json:"description" gorm:"type:text"`
	ProjectID      uuid.UUID        `json:"project_id" gorm:"type:uuid;not null;index"`
	Project        *Project         `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	AssignedTo     *uuid.UUID       `json:"assigned_to" gorm:"type:uuid;index"`
	Assignee       *User            `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
	Status         TaskStatus       `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Priority       TaskPriority     `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty" gorm:"type:numeric(8,2)"`
	ActualHours    *decimal.Decimal `json:"actual_hours,omitempty" gorm:"type:numeric(8,2)"`
	DueDate        *time.Time       `json:"due_date,omitempty" gorm:"type:date"`
	CreatedAt      time.Time        `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
