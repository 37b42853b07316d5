package impl

import (
	"context"
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

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the account registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := ensureEmailAvailable(ctx, userRepo, input.Email, 0); err != nil {
			return err
		}

		if input.ConfirmPassword != input.Password {
			return domainerrors.ErrPasswordMismatch.WrapMessage("confirmation does not match password")
		}

		user, err := createUserRecord(ctx, userRepo, srv.hasher, input.Name, input.Email, input.Password)
		if err != nil {
			return err
		}
		registered = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.log(ctx).Debug("Registration completed", slog.Uint64("userID", uint64(registered.ID)))
	publishUserEvent(ctx, srv.log(ctx), srv.publisher, entity.UserEventRegistered, registered)

	return registered, nil
}

// Login authenticates with email and password and signs an access token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.ValidateUser(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		srv.log(ctx).Info("Login rejected", slog.String("email", input.Email))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to sign access token", slog.Uint64("userID", uint64(user.ID)), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &usecase.LoginOutput{
		Token: token,
		User:  user,
	}, nil
}

// ValidateUser reports nil for an unknown email and for a wrong password alike.
func (srv *authService) ValidateUser(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		return nil, nil
	}

	return user, nil
}

// ensureEmailAvailable fails with ErrEmailAlreadyExists when the email belongs to a user other than ownerID.
// Pass 0 when there is no owner yet.
func ensureEmailAvailable(ctx context.Context, userRepo repository.UserRepository, email string, ownerID uint) error {
	existing, err := userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check email availability")
	}
	if existing.ID == ownerID {
		return nil
	}

	return domainerrors.ErrEmailAlreadyExists.WrapMessage("email already registered")
}

// createUserRecord hashes the password and persists a new user.
func createUserRecord(
	ctx context.Context,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	name, email, password string,
) (*entity.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}
