package repository

import (
	"context"

	"bookshelf/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrBookNotFound is returned when a book is not found.
var ErrBookNotFound = errors.New("book not found")

// BookRepository defines persistence operations for books.
type BookRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Book, error)
	FindAll(ctx context.Context) ([]*entity.Book, error)
	Create(ctx context.Context, book *entity.Book) error
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id uint) error
}
