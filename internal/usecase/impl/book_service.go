package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "bookshelf/internal/delivery/context"
	"bookshelf/internal/domain/entity"
	domainerrors "bookshelf/internal/domain/errors"
	"bookshelf/internal/domain/repository"
	"bookshelf/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type bookService struct {
	txManager repository.TransactionManager
	bookRepo  repository.BookRepository
	logger    *slog.Logger
}

// BookServiceParams holds dependencies for BookService, injected by Fx.
type BookServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	BookRepo  repository.BookRepository
	Logger    *slog.Logger
}

// NewBookService is the constructor for bookService.
func NewBookService(params BookServiceParams) usecase.BookUsecase {
	return &bookService{
		txManager: params.TxManager,
		bookRepo:  params.BookRepo,
		logger:    params.Logger,
	}
}

func (srv *bookService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *bookService) Create(ctx context.Context, input *usecase.CreateBookInput) (*entity.Book, error) {
	book := &entity.Book{
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		ISBN:          input.ISBN,
		PublishedYear: input.PublishedYear,
	}

	if err := srv.bookRepo.Create(ctx, book); err != nil {
		return nil, errors.Wrap(err, "failed to create book")
	}

	srv.log(ctx).Info("Book created", slog.Uint64("bookID", uint64(book.ID)))

	return book, nil
}

func (srv *bookService) FindAll(ctx context.Context) ([]*entity.Book, error) {
	books, err := srv.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	return books, nil
}

func (srv *bookService) FindOne(ctx context.Context, id uint) (*entity.Book, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, bookLookupError(err, id)
	}

	return book, nil
}

// Update merges only the fields present in the input.
func (srv *bookService) Update(ctx context.Context, id uint, input *usecase.UpdateBookInput) (*entity.Book, error) {
	var updated *entity.Book
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookRepo := repoFactory.BookRepo()

		book, err := bookRepo.FindByID(ctx, id)
		if err != nil {
			return bookLookupError(err, id)
		}

		applyBookChanges(book, input)

		if err := bookRepo.Update(ctx, book); err != nil {
			return bookLookupError(err, id)
		}
		updated = book

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update book")
	}

	return updated, nil
}

func (srv *bookService) Remove(ctx context.Context, id uint) (*usecase.MessageOutput, error) {
	var removed *entity.Book
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookRepo := repoFactory.BookRepo()

		book, err := bookRepo.FindByID(ctx, id)
		if err != nil {
			return bookLookupError(err, id)
		}

		if err := bookRepo.Delete(ctx, id); err != nil {
			return bookLookupError(err, id)
		}
		removed = book

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove book")
	}

	srv.log(ctx).Info("Book removed", slog.Uint64("bookID", uint64(id)))

	return &usecase.MessageOutput{
		Message: fmt.Sprintf("Livro %s deletado com sucesso", removed.Title),
	}, nil
}

func applyBookChanges(book *entity.Book, input *usecase.UpdateBookInput) {
	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.ISBN != nil {
		book.ISBN = *input.ISBN
	}
	if input.PublishedYear != nil {
		book.PublishedYear = *input.PublishedYear
	}
}

func bookLookupError(err error, id uint) error {
	if errors.Is(err, repository.ErrBookNotFound) {
		return domainerrors.ErrBookNotFound.WrapMessage(fmt.Sprintf("book %d", id))
	}

	return errors.Wrap(err, "failed to access book")
}
