package model

import (
	"strings"
	"time"
)

// Role is the sole authorization signal carried by a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// ParseRole normalizes s into a Role.  Unknown or empty values become
// RoleUser.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return RoleUser
	}
	return r
}

// Metadata is the free-form profile data stored alongside the credentials
// in the `accounts` table.  It seeds the profile row on first login and is
// the source of a synthesized profile when that row cannot be used.
type Metadata struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     Role    `json:"role,omitempty"`
}

// Account represents a row of the `accounts` table: the credential side
// of an identity.
//
// Fields:
//
//	ID           – UUID primary key, shared with the users row.
//	Email        – unique lower-cased email address.
//	PasswordHash – bcrypt hashed password.
//	Metadata     – JSON column with full_name, phone and role.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Metadata     Metadata  `json:"user_metadata"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User is a profile row of the `users` table.
type User struct {
	ID        string    `json:"id"`         // users.id (= accounts.id)
	Email     string    `json:"email"`      // users.email
	FullName  *string   `json:"full_name"`  // users.full_name
	Phone     *string   `json:"phone"`      // users.phone
	Role      Role      `json:"role"`       // users.role
	CreatedAt time.Time `json:"created_at"` // users.created_at
	UpdatedAt time.Time `json:"updated_at"` // users.updated_at
}

// IsAdmin reports whether the profile carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// ProfileFromAccount builds a profile from the account's metadata.  The
// role defaults to RoleUser when metadata carries none.
func ProfileFromAccount(a Account) User {
	return User{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.Metadata.FullName,
		Phone:     a.Metadata.Phone,
		Role:      ParseRole(string(a.Metadata.Role)),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is never stored; only its SHA‑256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	AccountID string     // refresh_tokens.account_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
