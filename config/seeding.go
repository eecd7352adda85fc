package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"p9e.in/sendreq/models"
)

// RunAllSeeding runs all seeding operations in the correct order.
// Each step skips itself if data already exists.
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/3] Seeding Demo Users...")
	SeedUsers()

	log.Println("[2/3] Seeding System Lists...")
	SeedSystemLists()

	log.Println("[3/3] Seeding Branding...")
	SeedBranding()

	log.Println("=== Database Seeding Complete ===")
	return nil
}

type seedUser struct {
	Name       string
	Email      string
	Roles      []string
	Department string
	Position   string
}

// SeedUsers creates the demo account set used for walkthroughs
func SeedUsers() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping")
		return
	}

	demoUsers := []seedUser{
		{"Alice Staff", "alice@org.com", []string{models.RoleStaff}, "Marketing", "Coordinator"},
		{"Bob Staff", "bob@org.com", []string{models.RoleStaff}, "IT", "Developer"},
		{"Charlie Auth", "charlie@org.com", []string{models.RoleAuthorizer, models.RoleStaff}, "Marketing", "Manager"},
		{"David Auth", "david@org.com", []string{models.RoleAuthorizer}, "IT", "Director"},
		{"Eve Exec", "eve@org.com", []string{models.RoleApprover, models.RoleAuthorizer}, "Executive", "Executive Director"},
		{"Frank Admin", "admin@org.com", []string{models.RoleAdmin}, "Admin", ""},
		{"Grace Audit", "grace@org.com", []string{models.RoleAuditor}, "Finance", "Auditor"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash seed password: %v", err)
		return
	}

	for _, su := range demoUsers {
		user := models.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Roles:        su.Roles,
			Department:   su.Department,
			Position:     su.Position,
		}
		if err := DB.Create(&user).Error; err != nil {
			log.Printf("Warning: failed to seed user %s: %v", su.Email, err)
		}
	}
	log.Printf("Seeded %d demo users", len(demoUsers))
}

// SeedSystemLists creates the default dropdown lists
func SeedSystemLists() {
	defaults := map[string][]string{
		models.ListCurrencies:      {"GHS", "USD", "EUR", "GBP"},
		models.ListBillingProjects: {"YOTA Main", "Skills Hub", "Community Outreach"},
		models.ListPaymentMethods:  {"Bank Transfer", "Mobile Money", "Cheque"},
		models.ListMomoOperators:   {"MTN", "Vodafone", "AirtelTigo"},
		models.ListDepartments:     {"Marketing", "IT", "Finance", "Executive", "Admin"},
		models.ListPositions:       {"Coordinator", "Developer", "Manager", "Director", "Executive Director"},
		models.ListRoles: {models.RoleAdmin, models.RoleStaff, models.RoleAuthorizer,
			models.RoleApprover, models.RoleAuditor},
	}

	for name, values := range defaults {
		var existing models.SystemList
		if err := DB.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}
		list := models.SystemList{Name: name, Values: values}
		if err := DB.Create(&list).Error; err != nil {
			log.Printf("Warning: failed to seed list %s: %v", name, err)
		}
	}
}

// SeedBranding creates the single branding row
func SeedBranding() {
	var count int64
	DB.Model(&models.BrandingSettings{}).Count(&count)
	if count > 0 {
		return
	}

	branding := models.BrandingSettings{
		LogoURL:             "logo.png",
		CopyrightText:       "© Youth Opportunity and Transformation in Africa",
		ShowDemoCredentials: true,
	}
	if err := DB.Create(&branding).Error; err != nil {
		log.Printf("Warning: failed to seed branding: %v", err)
	}
}
