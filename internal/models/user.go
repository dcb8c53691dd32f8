package models

import (
	"time"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)

// User represents an account that can sign in
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	RoleAdmin:  true,
	RoleAuthor: true,
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInput is the payload for registering or creating a user
type UserInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	FullName string `json:"full_name" form:"full_name"`
	Role     string `json:"role" form:"role"`
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	User        *User  `json:"user"`
}

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8
