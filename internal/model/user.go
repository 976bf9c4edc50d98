// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// PasswordHash holds the bcrypt hash of the user's password, never the
// plaintext. The `json:"-"` tag keeps it out of every API response; the
// only code that reads it is the login path's hash comparison.
//
// Username and Email both carry UNIQUE constraints in the database.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
