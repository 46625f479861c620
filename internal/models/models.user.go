// FilePath: internal/models/models.user.go
package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a dashboard account. The password hash is never exposed to any
// API role; the role field may only be written by admins.
type User struct {
	ID           int64     `json:"id" db:"id" readxs:"*"`
	Name         string    `json:"name" db:"name" readxs:"*" writexs:"*"`
	Email        string    `json:"email" db:"email" readxs:"*" writexs:"*"`
	PasswordHash string    `json:"-" db:"password" readxs:"system" writexs:"system"`
	Role         string    `json:"role" db:"role" readxs:"*" writexs:"admin,system"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" readxs:"*"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" readxs:"*"`
}

// UserInput is the write shape for user create/update requests.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
