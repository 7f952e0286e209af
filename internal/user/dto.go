package user

import (
	"github.com/google/uuid"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler
// Input commands
type RegisterCommand struct {
	Name           string
	Email          string
	Username       string
	CredentialHash string // hashed by the boundary layer before it gets here
}

type LoginCommand struct {
	Username string
	// CheckCredential compares the stored hash against the presented
	// secret; hashing mechanics live outside this core.
	CheckCredential func(storedHash string) bool
}

// Output DTOs
type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

type SessionDTO struct {
	Token     string   `json:"token"`
	ExpiresIn int      `json:"expires_in"`
	User      *UserDTO `json:"user"`
}
