package gormrepo

import (
	"context"
	"testing"

	"bookshelf/internal/domain/entity"
	"bookshelf/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Commit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tm := NewTransactionManager(db)

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Create(ctx, &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}); err != nil {
			return err
		}

		return f.BookRepo().Create(ctx, &entity.Book{Title: "T", Author: "A"})
	})
	require.NoError(t, err)

	users, err := NewUserRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	books, err := NewBookRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	errBusiness := errors.New("business failure")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Create(ctx, &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}); err != nil {
			return err
		}

		return errBusiness
	})
	assert.ErrorIs(t, err, errBusiness)

	_, err = NewUserRepository(db).FindByEmail(ctx, "ana@x.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tm := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.UserRepo().Create(ctx, &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"})
			panic("boom")
		})
	})

	_, err := NewUserRepository(db).FindByEmail(ctx, "ana@x.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_FactoryReposShareTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	errBusiness := errors.New("business failure")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		user := &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}
		if err := f.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		// A second repo from the same factory sees the uncommitted row.
		found, err := f.UserRepo().FindByEmail(ctx, "ana@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		require.NoError(t, f.UserRepo().UpdatePassword(ctx, user.ID, "h2"))

		return errBusiness
	})
	assert.ErrorIs(t, err, errBusiness)

	users, err := NewUserRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
