package models

import (
	"time"
)

// User represents a system account with authentication credentials.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	Email    string `gorm:"size:255;not null" json:"email"`

	Firstname string `gorm:"size:100" json:"firstname,omitempty"`
	Lastname  string `gorm:"size:100" json:"lastname,omitempty"`

	// Activated is flipped once by the onboarding flow; a non-activated
	// account cannot log in.
	Activated bool `gorm:"default:false" json:"activated"`

	AccountLocked     bool       `gorm:"default:false" json:"account_locked"`
	AccountLockedDate *time.Time `json:"account_locked_date,omitempty"`

	FailedLogins       int        `gorm:"default:0" json:"failed_logins"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
	PasswordExpireDate *time.Time `json:"password_expire_date,omitempty"`

	RoleID *uint `gorm:"index" json:"role_id,omitempty"`
	Role   *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	CreatedBy string `gorm:"size:100" json:"created_by,omitempty"`
	UpdatedBy string `gorm:"size:100" json:"updated_by,omitempty"`
}

// Role groups permissions under a named authority such as ROLE_ADMIN.
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description,omitempty"`

	// Permissions granted by this role, via the role_permissions join table.
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

// Permission is a single authority string, e.g. "connection:write".
type Permission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"size:200" json:"description,omitempty"`
}
