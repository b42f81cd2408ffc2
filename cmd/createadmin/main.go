package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storeapi/internal/config"
	"storeapi/internal/db"
	"storeapi/internal/model"
	"storeapi/internal/repository"
)

// Bootstrap credentials; override with ADMIN_EMAIL / ADMIN_PASSWORD /
// ADMIN_NAME. Meant for local setups only.
const (
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "Administrator"
)

func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	users := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if _, err := users.FindFirstByRole(ctx, model.RoleAdmin); err == nil {
		log.Println("an admin user already exists, nothing to do")
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("check existing admin: %v", err)
	}

	email := getEnv("ADMIN_EMAIL", defaultAdminEmail)
	password := getEnv("ADMIN_PASSWORD", defaultAdminPassword)
	name := getEnv("ADMIN_NAME", defaultAdminName)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("admin user created: %s", admin.Email)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
