// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account that can authenticate against the service.
type User struct {
	ID           uint      // Database generated identifier.
	Name         string    // Display name, never empty.
	Email        string    // Unique across all users; used as the login identifier.
	PasswordHash string    // argon2id digest. The plaintext is never stored.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// UserSummary is the public view of a user. It never carries the password digest.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary strips the credential fields from the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
