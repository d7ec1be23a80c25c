package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a staff member.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the authenticated staff member, never the
// credential. The session token travels in the cookie only.
type LoginResponse struct {
	Message string    `json:"message"`
	User    StaffInfo `json:"user"`
}

// SessionClaims is the signed payload of a session token. The fields
// mirror the legacy cookie so a decoded session resolves to the same
// principal.
type SessionClaims struct {
	UserID     string `json:"user_id"`
	StaffID    string `json:"staff_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Section    string `json:"section"`
	jwt.RegisteredClaims
}

// Principal materializes the claims into the per-request caller value.
func (c *SessionClaims) Principal() *Principal {
	return &Principal{
		UserID:     c.UserID,
		StaffID:    c.StaffID,
		Name:       c.Name,
		Email:      c.Email,
		Roles:      ParseRoles(c.Role),
		Department: c.Department,
		Section:    c.Section,
	}
}

// SessionView is the payload of GET /auth/session.
type SessionView struct {
	UserID     string `json:"userId"`
	StaffID    string `json:"staffId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Section    string `json:"section"`
}
