package usecase

import (
	"context"

	"bookshelf/internal/domain/entity"
)

// CreateUserInput defines the data required to create a user from the management API.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries the profile fields to change. Nil fields are left as they are.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// MessageOutput is the confirmation returned by delete operations.
type MessageOutput struct {
	Message string
}

// UserUsecase defines user management operations.
type UserUsecase interface {
	Create(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindOne(ctx context.Context, id uint) (*entity.User, error)
	Update(ctx context.Context, id uint, input *UpdateUserInput) (*entity.User, error)
	Remove(ctx context.Context, id uint) (*MessageOutput, error)

	// UpdatePassword replaces the stored digest. The current password is not re-verified.
	UpdatePassword(ctx context.Context, id uint, password string) (*entity.User, error)
}
