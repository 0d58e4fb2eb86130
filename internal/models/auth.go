package models

import "github.com/golang-jwt/jwt/v5"

// UserRole mirrors the roles issued by the core API.
type UserRole string

const (
	RoleStudent    UserRole = "STUDENT"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleAdmin      UserRole = "ADMIN"
)

// JWTClaims represents the access-token payload issued by the core API.
// The gateway only validates tokens; it never issues or refreshes them.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	CPF    string   `json:"cpf,omitempty"`
	jwt.RegisteredClaims
}
