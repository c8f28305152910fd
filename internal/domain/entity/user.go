package entity

import "time"

// Role is the authorization role assigned at registration.
// It is immutable afterwards; promotion happens out of band (cmd/seed).
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash; the plaintext is never persisted or logged.
// ResetToken/ResetTokenExpiresAt implement the single-use, time-boxed
// password-reset flow and are cleared together on consumption.
type User struct {
	ID                  string
	Email               string
	PasswordHash        string
	Name                string
	Role                Role
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
