package models

import "github.com/golang-jwt/jwt/v5"

// Role values accepted by the RBAC middleware.
const (
	RoleAdmin     = "ADMIN"
	RoleScheduler = "SCHEDULER"
	RoleFaculty   = "FACULTY"
)

// JWTClaims are the access-token claims this service verifies. Token
// issuance belongs to the identity service; only verification lives here.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
