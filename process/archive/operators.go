package archive

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"resourceocr/models"
)

var (
	ErrOperatorExists     = errors.New("operator already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MinPasswordLength is the basic password policy for operators.
const MinPasswordLength = 6

// EnsureRoles seeds the master roles. It is idempotent.
func EnsureRoles(gdb *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdministrator, Description: "manage operators and trigger runs", CanRun: true},
		{Name: models.RoleViewer, Description: "read archived runs"},
	}
	for _, r := range roles {
		if err := gdb.Where("name = ?", r.Name).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("ensure role %s: %w", r.Name, err)
		}
	}
	return nil
}

// CreateOperator stores a new operator with a bcrypt password hash.
func CreateOperator(gdb *gorm.DB, username, password, roleName string) (*models.Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username required")
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password too short (min %d)", MinPasswordLength)
	}
	if roleName == "" {
		roleName = models.RoleViewer
	}
	var existing models.Operator
	if err := gdb.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrOperatorExists
	}
	var role models.Role
	if err := gdb.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, fmt.Errorf("unknown role %q: %w", roleName, err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rid := role.ID
	op := models.Operator{Username: username, HashedPassword: hashed, RoleID: &rid, Role: role}
	if err := gdb.Omit("Role").Create(&op).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrOperatorExists
		}
		return nil, err
	}
	return &op, nil
}

// Authenticate checks username and password and returns the operator with its role.
func Authenticate(gdb *gorm.DB, username, password string) (*models.Operator, error) {
	var op models.Operator
	if err := gdb.Preload("Role").Where("username = ?", strings.TrimSpace(username)).First(&op).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(op.HashedPassword, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &op, nil
}

// FindOperator loads an operator with its role.
func FindOperator(gdb *gorm.DB, username string) (*models.Operator, error) {
	var op models.Operator
	if err := gdb.Preload("Role").Where("username = ?", username).First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func isUniqueConstraintError(err error) bool {
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "Duplicate entry") || strings.Contains(s, "already exists")
}
