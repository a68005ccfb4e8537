package database

import (
	"fmt"
	"log"

	"github.com/snishiyama/networking-crm/internal/constants"
	"github.com/snishiyama/networking-crm/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperAdmin creates the initial super admin when the users table is
// empty. The default password must be changed after first login.
func SeedSuperAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), constants.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create seed super admin: %w", err)
	}

	log.Println("Seeded super admin 'admin' -- change the default password")
	return nil
}
