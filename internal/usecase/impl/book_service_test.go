package impl

import (
	"context"
	"testing"

	"bookshelf/internal/domain/entity"
	domainerrors "bookshelf/internal/domain/errors"
	"bookshelf/internal/domain/repository"
	mockRepo "bookshelf/internal/mocks/repository"
	"bookshelf/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookServiceFixtures struct {
	service   usecase.BookUsecase
	txManager *mockRepo.MockTransactionManager
	bookRepo  *mockRepo.MockBookRepository
}

func createTestBookService(t *testing.T) bookServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	bookRepo := mockRepo.NewMockBookRepository(t)

	service := NewBookService(BookServiceParams{
		TxManager: txManager,
		BookRepo:  bookRepo,
		Logger:    newDiscardLogger(),
	})

	return bookServiceFixtures{
		service:   service,
		txManager: txManager,
		bookRepo:  bookRepo,
	}
}

func storedBook() *entity.Book {
	return &entity.Book{ID: 5, Title: "Dom Casmurro", Author: "Machado de Assis", PublishedYear: 1899}
}

func TestBookService_Create(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	fx.bookRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(b *entity.Book) bool {
			return b.Title == "Dom Casmurro" && b.Author == "Machado de Assis" && b.PublishedYear == 1899
		})).
		Run(func(_ context.Context, b *entity.Book) { b.ID = 5 }).
		Return(nil)

	book, err := fx.service.Create(ctx, &usecase.CreateBookInput{
		Title:         "Dom Casmurro",
		Author:        "Machado de Assis",
		PublishedYear: 1899,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), book.ID)
}

func TestBookService_FindOne_NotFound(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	fx.bookRepo.EXPECT().FindByID(ctx, uint(8)).Return(nil, repository.ErrBookNotFound)

	_, err := fx.service.FindOne(ctx, 8)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBookNotFound))
}

func TestBookService_FindAll_StorageError(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()
	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("disk full"), "failed to list books")

	fx.bookRepo.EXPECT().FindAll(ctx).Return(nil, dbErr)

	_, err := fx.service.FindAll(ctx)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.HTTPCode())
}

func TestBookService_Update_MergesPresentFields(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	expectTransaction(t, fx.txManager, nil, fx.bookRepo)
	fx.bookRepo.EXPECT().FindByID(ctx, uint(5)).Return(storedBook(), nil)
	fx.bookRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(b *entity.Book) bool {
			return b.Title == "Dom Casmurro" && b.Description == "Romance" && b.PublishedYear == 1900
		})).
		Return(nil)

	book, err := fx.service.Update(ctx, 5, &usecase.UpdateBookInput{
		Description:   ptr("Romance"),
		PublishedYear: ptr(1900),
	})

	require.NoError(t, err)
	assert.Equal(t, "Machado de Assis", book.Author)
	assert.Equal(t, "Romance", book.Description)
}

func TestBookService_Remove(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	expectTransaction(t, fx.txManager, nil, fx.bookRepo)
	fx.bookRepo.EXPECT().FindByID(ctx, uint(5)).Return(storedBook(), nil)
	fx.bookRepo.EXPECT().Delete(ctx, uint(5)).Return(nil)

	output, err := fx.service.Remove(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, "Livro Dom Casmurro deletado com sucesso", output.Message)
}

func TestBookService_Remove_NotFound(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	expectTransaction(t, fx.txManager, nil, fx.bookRepo)
	fx.bookRepo.EXPECT().FindByID(ctx, uint(6)).Return(nil, repository.ErrBookNotFound)

	_, err := fx.service.Remove(ctx, 6)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBookNotFound))
}
