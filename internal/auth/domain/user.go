package domain

import "time"

// DefaultRole is assigned when signup does not specify a role.
const DefaultRole = "Member"

type User struct {
	ID           string
	Name         string
	Email        string // stored lowercase, unique
	PasswordHash string // argon2 encoded
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
