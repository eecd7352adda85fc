// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role tags assigned to users. Roles are a flat set of independent tags,
// not a hierarchy; a user may carry several at once.
const (
	RoleAdmin      = "ADMIN"
	RoleStaff      = "STAFF"
	RoleAuthorizer = "AUTHORIZER"
	RoleApprover   = "APPROVER" // Executive Director
	RoleAuditor    = "AUDITOR"
)

type User struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string      `gorm:"size:100;not null" json:"name"`
	Email             string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash      string      `gorm:"size:255;not null" json:"-"`
	Roles             StringArray `gorm:"type:jsonb;default:'[]'" json:"roles"`
	Department        string      `gorm:"size:100;not null" json:"department"`
	Position          string      `gorm:"size:100" json:"position,omitempty"`
	ProfilePictureURL string      `gorm:"size:500" json:"profile_picture_url,omitempty"`
	IsActive          bool        `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// HasRole checks if the user carries a specific role tag
func (u *User) HasRole(role string) bool {
	return u.Roles.Contains(role)
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
