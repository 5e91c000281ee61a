package domain

import "time"

// User represents a HushRyd account. Riders and drivers authenticate with a
// phone OTP; staff accounts (admin, support) additionally carry a password.
type User struct {
	ID           uint
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	Role         string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OTPIssue represents the outcome of issuing a one-time password.
type OTPIssue struct {
	Phone     string
	Code      string
	ExpiresAt time.Time
	ExpiresIn int64 // seconds until expiry, echoed to the client
}

// AuthResult represents a successful login.
type AuthResult struct {
	User      *User
	Token     string
	SessionID string
	ExpiresIn int64
}

// Session represents a live login session backing a bearer token.
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}
