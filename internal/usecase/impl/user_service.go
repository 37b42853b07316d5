package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "bookshelf/internal/delivery/context"
	"bookshelf/internal/domain/entity"
	domainerrors "bookshelf/internal/domain/errors"
	"bookshelf/internal/domain/repository"
	"bookshelf/internal/domain/service"
	"bookshelf/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	publisher service.EventPublisher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create adds a user. The email must not be in use.
func (srv *userService) Create(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	var created *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := ensureEmailAvailable(ctx, userRepo, input.Email, 0); err != nil {
			return err
		}

		user, err := createUserRecord(ctx, userRepo, srv.hasher, input.Name, input.Email, input.Password)
		if err != nil {
			return err
		}
		created = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.Uint64("userID", uint64(created.ID)))
	publishUserEvent(ctx, srv.log(ctx), srv.publisher, entity.UserEventCreated, created)

	return created, nil
}

func (srv *userService) FindAll(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

func (srv *userService) FindOne(ctx context.Context, id uint) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, id)
	}

	return user, nil
}

// Update merges the given fields into the stored user. The password is never touched here.
func (srv *userService) Update(ctx context.Context, id uint, input *usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return userLookupError(err, id)
		}

		if input.Email != nil && *input.Email != user.Email {
			if err := ensureEmailAvailable(ctx, userRepo, *input.Email, user.ID); err != nil {
				return err
			}
			user.Email = *input.Email
		}
		if input.Name != nil {
			user.Name = *input.Name
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return userLookupError(err, id)
			}

			return errors.Wrap(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return updated, nil
}

// Remove deletes the user after confirming it exists.
func (srv *userService) Remove(ctx context.Context, id uint) (*usecase.MessageOutput, error) {
	var removed *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return userLookupError(err, id)
		}

		if err := userRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return userLookupError(err, id)
			}

			return errors.Wrap(err, "failed to delete user")
		}
		removed = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove user")
	}

	srv.log(ctx).Info("User removed", slog.Uint64("userID", uint64(removed.ID)))
	publishUserEvent(ctx, srv.log(ctx), srv.publisher, entity.UserEventDeleted, removed)

	return &usecase.MessageOutput{
		Message: fmt.Sprintf("Usuario %s deletado com sucesso", removed.Name),
	}, nil
}

// UpdatePassword hashes the new password and overwrites only the digest.
func (srv *userService) UpdatePassword(ctx context.Context, id uint, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, id)
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	if err := srv.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		return nil, userLookupError(err, id)
	}
	user.PasswordHash = hash

	srv.log(ctx).Info("User password updated", slog.Uint64("userID", uint64(id)))

	return user, nil
}

// userLookupError maps the repository not-found sentinel to the 404 domain error.
func userLookupError(err error, id uint) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound.WrapMessage(fmt.Sprintf("user %d", id))
	}

	return errors.Wrap(err, "failed to find user")
}
