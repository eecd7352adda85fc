package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/sendreq/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250801_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.PaymentRequest{},
					&models.Notification{}, &models.ChatMessage{})
			},
		},
		{
			ID: "20250812_add_transition_audit",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.RequestTransition{})
			},
		},
		{
			ID: "20250820_add_settings_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.BrandingSettings{}, &models.SystemList{})
			},
		},
	})

	return m.Migrate()
}
