package bootstrap

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Novel{},
		&entity.Chapter{},
		&entity.Segment{},
		&entity.Comment{},
		&entity.CommentLike{},
		&entity.Reaction{},
		&entity.ReadingProgress{},
		&entity.BlogPost{},
	)
}

// SeedAdminUser creates the initial admin account when none exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD, with development
// defaults so a fresh database is immediately usable.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@kweezy.app"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleAdmin,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Admin user seeded (email: %s)", email)
	return nil
}
