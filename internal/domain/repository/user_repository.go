// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bookshelf/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll lists every user, oldest first.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user and fills the generated ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// Update writes the profile fields (name, email). The password digest is left untouched.
	Update(ctx context.Context, user *entity.User) error

	// UpdatePassword overwrites only the stored password digest.
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error

	// Delete removes the user with the given ID.
	Delete(ctx context.Context, id uint) error
}
