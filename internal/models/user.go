package models

import "time"

// User is an application account. PasswordHash is a bcrypt hash and is never
// serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BulkFailure identifies one failed item in a bulk operation with enough
// context for the user to locate and retry it.
type BulkFailure struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Error       string `json:"error"`
}

// BulkResult aggregates per-item outcomes of a bulk operation. Success count
// and failures are always reported together, never collapsed to a boolean.
type BulkResult struct {
	SuccessCount int           `json:"success_count"`
	Failures     []BulkFailure `json:"failures"`
}
