// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// Emails are stored lowercase; the hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
