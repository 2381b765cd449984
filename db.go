package main

import (
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"resourceocr/models"
	"resourceocr/process/archive"
)

var db *gorm.DB

func initDB() {
	gdb, err := archive.OpenFromEnv()
	if err != nil {
		log.Fatal("failed to connect archive database:", err)
	}
	if gdb == nil {
		log.Fatal("DB_DSN is not set. The server requires a database DSN in DB_DSN (DB_DRIVER=postgres|mysql).")
	}
	db = gdb
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	if shouldMigrate() {
		if err := archive.Migrate(db); err != nil {
			log.Printf("migration warning: %v", err)
		}
	}
	seedDB()
}

func shouldMigrate() bool {
	v := strings.ToLower(os.Getenv("DB_AUTO_MIGRATE"))
	return v != "false" && v != "0" && v != "no"
}

func seedDB() {
	if err := archive.EnsureRoles(db); err != nil {
		log.Printf("failed to seed roles: %v", err)
		return
	}
	if _, err := archive.FindOperator(db, "admin"); err == nil {
		return
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if _, err := archive.CreateOperator(db, "admin", password, models.RoleAdministrator); err != nil {
		log.Printf("failed to seed admin operator: %v", err)
		return
	}
	log.Println("Seeded admin operator: username=admin")
}
