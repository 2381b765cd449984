package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"resourceocr/models"
	"resourceocr/process/archive"
)

// tokenTTL is the lifetime of an access token.
const tokenTTL = 24 * time.Hour

func Register(username, password, role string) (*models.Operator, error) {
	return archive.CreateOperator(db, username, password, role)
}

func Login(username, password string) (*models.Operator, error) {
	return archive.Authenticate(db, username, password)
}

// issueToken signs an HS256 token carrying the operator's name and permissions.
func issueToken(op *models.Operator) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": op.Username,
		"role":     op.Role.Name,
		"can_run":  op.Role.CanRun,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	s, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}
