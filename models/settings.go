package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandingSettings holds the org-wide presentation settings. A single row
// is seeded at migration time and updated in place by admins.
type BrandingSettings struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LogoURL             string    `gorm:"size:500;not null;default:'logo.png'" json:"logo_url"`
	CopyrightText       string    `gorm:"size:255" json:"copyright_text"`
	ShowDemoCredentials bool      `gorm:"default:false" json:"show_demo_credentials"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (b *BrandingSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// TableName specifies the table name
func (BrandingSettings) TableName() string {
	return "branding_settings"
}

// Well-known system list names
const (
	ListCurrencies      = "currencies"
	ListBillingProjects = "billing_projects"
	ListPaymentMethods  = "payment_methods"
	ListMomoOperators   = "momo_operators"
	ListDepartments     = "departments"
	ListPositions       = "positions"
	ListRoles           = "roles"
)

// SystemList is an admin-managed dropdown list (currencies, departments, ...)
type SystemList struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string      `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Values    StringArray `gorm:"type:jsonb;default:'[]'" json:"values"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (l *SystemList) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// TableName specifies the table name
func (SystemList) TableName() string {
	return "system_lists"
}
