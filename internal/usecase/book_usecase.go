package usecase

import (
	"context"

	"bookshelf/internal/domain/entity"
)

// CreateBookInput defines the data required to create a book.
type CreateBookInput struct {
	Title         string
	Author        string
	Description   string
	ISBN          string
	PublishedYear int
}

// UpdateBookInput carries the book fields to change. Nil fields are left as they are.
type UpdateBookInput struct {
	Title         *string
	Author        *string
	Description   *string
	ISBN          *string
	PublishedYear *int
}

// BookUsecase defines book record management.
type BookUsecase interface {
	Create(ctx context.Context, input *CreateBookInput) (*entity.Book, error)
	FindAll(ctx context.Context) ([]*entity.Book, error)
	FindOne(ctx context.Context, id uint) (*entity.Book, error)
	Update(ctx context.Context, id uint, input *UpdateBookInput) (*entity.Book, error)
	Remove(ctx context.Context, id uint) (*MessageOutput, error)
}
