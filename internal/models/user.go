package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role decides what a user may see and change. There is exactly one role
// per user; all permission checks derive from it.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleFreelancer     Role = "freelancer"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleProjectManager, RoleFreelancer:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool          { return u.Role == RoleAdmin }
func (u *User) IsProjectManager() bool { return u.Role == RoleProjectManager }
func (u *User) IsFreelancer() bool     { return u.Role == RoleFreelancer }
