// Package archive stores finished runs in a relational database through gorm.
package archive

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"resourceocr/models"
)

// Open connects with the named driver: "postgres" (default) or "mysql".
func Open(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	var dial gorm.Dialector
	switch strings.ToLower(driver) {
	case "", "postgres", "postgresql":
		dial = postgres.Open(dsn)
	case "mysql":
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	gdb, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return gdb, nil
}

// OpenFromEnv uses DB_DRIVER and DB_DSN. It returns nil, nil when DB_DSN is unset
// so callers can run without an archive.
func OpenFromEnv() (*gorm.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, nil
	}
	return Open(os.Getenv("DB_DRIVER"), dsn)
}

// Migrate creates or updates every archive table. Each model is migrated on its
// own so one failure does not block the others.
func Migrate(gdb *gorm.DB) error {
	var failed []string
	for _, m := range []any{&models.Role{}, &models.Operator{}, &models.Run{}, &models.Resource{}, &models.Screenshot{}, &models.Warning{}} {
		if err := gdb.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
			failed = append(failed, fmt.Sprintf("%T", m))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("migration failed for %s", strings.Join(failed, ", "))
	}
	return nil
}
