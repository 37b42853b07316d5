package gormrepo

import (
	"context"

	"bookshelf/internal/domain/entity"
	domainerrors "bookshelf/internal/domain/errors"
	"bookshelf/internal/domain/repository"
	"bookshelf/internal/infra/persistence/gormrepo/query"
	"bookshelf/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type bookRepository struct {
	q *query.Query
}

// NewBookRepository creates a book repository on the given connection or transaction.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{q: query.Use(db)}
}

func (repo *bookRepository) FindByID(ctx context.Context, id uint) (*entity.Book, error) {
	bookM, err := repo.q.BookModel.WithContext(ctx).
		Where(repo.q.BookModel.ID.Eq(id)).
		First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find book by id")
	}

	return toBookDomain(bookM), nil
}

func (repo *bookRepository) FindAll(ctx context.Context) ([]*entity.Book, error) {
	bookMs, err := repo.q.BookModel.WithContext(ctx).
		Order(repo.q.BookModel.ID).
		Find()
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list books")
	}

	books := make([]*entity.Book, 0, len(bookMs))
	for _, bookM := range bookMs {
		books = append(books, toBookDomain(bookM))
	}

	return books, nil
}

func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.q.BookModel.WithContext(ctx).Create(bookM); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	book.ID = bookM.ID
	book.CreatedAt = bookM.CreatedAt
	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Update saves every column of the book. Merging partial input is the caller's job.
func (repo *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)
	b := repo.q.BookModel

	result, err := b.WithContext(ctx).
		Where(b.ID.Eq(book.ID)).
		Select(b.Title, b.Author, b.Description, b.ISBN, b.PublishedYear, b.UpdatedAt).
		Updates(bookM)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

func (repo *bookRepository) Delete(ctx context.Context, id uint) error {
	result, err := repo.q.BookModel.WithContext(ctx).
		Where(repo.q.BookModel.ID.Eq(id)).
		Delete()
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

func toBookDomain(data *model.BookModel) *entity.Book {
	if data == nil {
		return nil
	}

	return &entity.Book{
		ID:            data.ID,
		Title:         data.Title,
		Author:        data.Author,
		Description:   data.Description,
		ISBN:          data.ISBN,
		PublishedYear: data.PublishedYear,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromBookDomain(data *entity.Book) *model.BookModel {
	if data == nil {
		return nil
	}

	return &model.BookModel{
		ID:            data.ID,
		Title:         data.Title,
		Author:        data.Author,
		Description:   data.Description,
		ISBN:          data.ISBN,
		PublishedYear: data.PublishedYear,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
