package domain

import (
	"strings"
	"time"
)

// Role enumerates the two operator roles. Roles are stored and compared
// case-insensitively; the canonical forms are lower case.
type Role string

const (
	RoleEngineer Role = "engineer"
	RoleManager  Role = "manager"
)

// Is compares roles case-insensitively.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// User models a field engineer or a dispatch manager.
type User struct {
	ID           int64
	EngineerID   string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
