package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bookshelf/internal/domain/repository"
	mockRepo "bookshelf/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// expectTransaction makes the mocked manager run the callback against a factory
// that hands out the given repositories.
func expectTransaction(
	t *testing.T,
	txManager *mockRepo.MockTransactionManager,
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	if userRepo != nil {
		factory.EXPECT().UserRepo().Return(userRepo).Maybe()
	}
	if bookRepo != nil {
		factory.EXPECT().BookRepo().Return(bookRepo).Maybe()
	}

	txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func ptr[T any](v T) *T {
	return &v
}
