package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"bookshelf/config"
	apimiddleware "bookshelf/internal/delivery/api/middleware"
	"bookshelf/internal/delivery/api/router"
	"bookshelf/internal/delivery/api/router/handler"
	"bookshelf/internal/domain/service"
	"bookshelf/internal/infra/auth"
	"bookshelf/internal/infra/persistence/database"
	"bookshelf/internal/infra/persistence/gormrepo"
	"bookshelf/internal/infra/persistence/migrations"
	"bookshelf/internal/infra/pubsub"
	"bookshelf/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type testAPI struct {
	echo     *echo.Echo
	tokenSvc service.TokenService
	params   ServerParams
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1MB"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.Path = filepath.Join(t.TempDir(), "api.db")
	cfg.SecretKey.Access = "test-access-secret"

	return cfg
}

// newTestAPI wires the real stack on a temp sqlite database with cheap argon2 parameters.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := newTestConfig(t)
	logger := slog.New(slog.DiscardHandler)

	db, err := database.Open(cfg, logger)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.Up(context.Background(), sqlDB, config.DriverSQLite))

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	hasher := auth.NewArgon2HasherWithParams(auth.Argon2Params{
		Iterations:  1,
		MemoryKiB:   1024,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	publisher := pubsub.NewNoopPublisher(logger)
	txManager := gormrepo.NewTransactionManager(db)
	userRepo := gormrepo.NewUserRepository(db)
	bookRepo := gormrepo.NewBookRepository(db)

	routerParams := router.RouterParams{
		AuthHandler: handler.NewAuthHandler(impl.NewAuthService(impl.AuthServiceParams{
			TxManager:    txManager,
			UserRepo:     userRepo,
			Hasher:       hasher,
			TokenService: tokenSvc,
			Publisher:    publisher,
			Logger:       logger,
		})),
		UserHandler: handler.NewUserHandler(impl.NewUserService(impl.UserServiceParams{
			TxManager: txManager,
			UserRepo:  userRepo,
			Hasher:    hasher,
			Publisher: publisher,
			Logger:    logger,
		})),
		BookHandler: handler.NewBookHandler(impl.NewBookService(impl.BookServiceParams{
			TxManager: txManager,
			BookRepo:  bookRepo,
			Logger:    logger,
		})),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokenSvc, logger),
	}

	e := newEcho(cfg, logger)
	router.NewRouter(routerParams).RegisterRoutes(e)

	return &testAPI{
		echo:     e,
		tokenSvc: tokenSvc,
		params: ServerParams{
			Cfg:          cfg,
			Logger:       logger,
			RouterParams: routerParams,
		},
	}
}

func (a *testAPI) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type userBody struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type bookBody struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PublishedYear int    `json:"published_year"`
}

func (a *testAPI) register(t *testing.T, name, email, password string) userBody {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/register", "", fmt.Sprintf(
		`{"name":%q,"email":%q,"password":%q,"confirm_password":%q}`, name, email, password, password))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[userBody](t, rec)
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/login", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return decode[struct {
		Token string `json:"token"`
	}](t, rec).Token
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/auth/register", "",
		`{"name":"Ana","email":"ana@x.io","password":"secret1","confirm_password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	ana := decode[userBody](t, rec)
	assert.NotZero(t, ana.ID)
	assert.Equal(t, "Ana", ana.Name)
	assert.Equal(t, "ana@x.io", ana.Email)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/register", "",
			`{"name":"Ana 2","email":"ana@x.io","password":"secret1","confirm_password":"other12"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decode[errorEnvelope](t, rec)
		assert.Equal(t, "EMAIL_ALREADY_EXISTS", body.Error.Code)
		assert.Equal(t, "Email já cadastrado", body.Error.Message)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/register", "",
			`{"name":"Bia","email":"bia@x.io","password":"secret1","confirm_password":"secret2"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorEnvelope](t, rec)
		assert.Equal(t, "PASSWORD_MISMATCH", body.Error.Code)
		assert.Equal(t, "Senha de confirmação incorreta", body.Error.Message)
	})

	t.Run("field validation", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/register", "",
			`{"email":"bia@x.io","password":"123","confirm_password":"123"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorEnvelope](t, rec)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		require.Len(t, body.Error.Details, 3)
		assert.Equal(t, "name", body.Error.Details[0].Field)
		assert.Equal(t, "O nome é obrigatório", body.Error.Details[0].Message)
		assert.Equal(t, "password", body.Error.Details[1].Field)
		assert.Equal(t, "A senha precisa ter pelo menos 6 caracteres", body.Error.Details[1].Message)
		assert.Equal(t, "confirm_password", body.Error.Details[2].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/register", "", `{"name":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", decode[errorEnvelope](t, rec).Error.Code)
	})

	t.Run("login issues a token for the user", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/login", "", `{"email":"ana@x.io","password":"secret1"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[struct {
			Token string   `json:"token"`
			User  userBody `json:"user"`
		}](t, rec)
		assert.Equal(t, ana, body.User)

		claims, err := api.tokenSvc.ValidateToken(body.Token)
		require.NoError(t, err)
		assert.Equal(t, ana.ID, claims.UserID)
		assert.Equal(t, "ana@x.io", claims.Email)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		for _, payload := range []string{
			`{"email":"ana@x.io","password":"wrongpass"}`,
			`{"email":"nobody@x.io","password":"secret1"}`,
		} {
			rec := api.do(t, http.MethodPost, "/auth/login", "", payload)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode[errorEnvelope](t, rec)
			assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
			assert.Equal(t, "Credenciais inválidas", body.Error.Message)
		}
	})

	t.Run("login validation messages", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/login", "", `{}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorEnvelope](t, rec)
		require.Len(t, body.Error.Details, 2)
		assert.Equal(t, "O email é obrigatório.", body.Error.Details[0].Message)
		assert.Equal(t, "A senha é obrigatória.", body.Error.Details[1].Message)
	})

	t.Run("short login password is a validation error", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/auth/login", "", `{"email":"ana@x.io","password":"12345"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorEnvelope](t, rec)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		require.Len(t, body.Error.Details, 1)
		assert.Equal(t, "password", body.Error.Details[0].Field)
		assert.Equal(t, "A senha deve ter pelo menos 6 caracteres.", body.Error.Details[0].Message)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/books", "/users", "/books/1", "/users/1"} {
		rec := api.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "UNAUTHORIZED", decode[errorEnvelope](t, rec).Error.Code)
	}

	rec := api.do(t, http.MethodGet, "/books", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBooks(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Ana", "ana@x.io", "secret1")
	token := api.login(t, "ana@x.io", "secret1")

	rec := api.do(t, http.MethodPost, "/books", token, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decode[errorEnvelope](t, rec).Error.Details
	require.Len(t, details, 2)
	assert.Equal(t, "O título é obrigatório", details[0].Message)
	assert.Equal(t, "O autor é obrigatório", details[1].Message)

	rec = api.do(t, http.MethodPost, "/books", token,
		`{"title":"Dom Casmurro","author":"Machado de Assis","published_year":1899}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	book := decode[bookBody](t, rec)
	assert.NotZero(t, book.ID)
	bookPath := fmt.Sprintf("/books/%d", book.ID)

	rec = api.do(t, http.MethodGet, "/books", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]bookBody](t, rec), 1)

	rec = api.do(t, http.MethodPut, bookPath, token, `{"description":"Romance"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[bookBody](t, rec)
	assert.Equal(t, "Romance", updated.Description)
	assert.Equal(t, "Dom Casmurro", updated.Title)
	assert.Equal(t, 1899, updated.PublishedYear)

	rec = api.do(t, http.MethodGet, "/books/abc", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", decode[errorEnvelope](t, rec).Error.Code)

	rec = api.do(t, http.MethodDelete, bookPath, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Livro Dom Casmurro deletado com sucesso"}`, rec.Body.String())

	rec = api.do(t, http.MethodGet, bookPath, token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "BOOK_NOT_FOUND", decode[errorEnvelope](t, rec).Error.Code)
}

func TestUsers(t *testing.T) {
	api := newTestAPI(t)
	ana := api.register(t, "Ana", "ana@x.io", "secret1")
	token := api.login(t, "ana@x.io", "secret1")
	anaPath := fmt.Sprintf("/users/%d", ana.ID)

	rec := api.do(t, http.MethodPost, "/users", token, `{"name":"Bia","email":"bia","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decode[errorEnvelope](t, rec).Error.Details
	require.Len(t, details, 1)
	assert.Equal(t, "O email precisa ser válido", details[0].Message)

	rec = api.do(t, http.MethodPost, "/users", token, `{"name":"Bia","email":"bia@x.io","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	bia := decode[userBody](t, rec)

	rec = api.do(t, http.MethodGet, "/users", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Len(t, decode[[]userBody](t, rec), 2)

	rec = api.do(t, http.MethodPatch, anaPath, token, `{"email":"bia@x.io"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodPatch, anaPath, token, `{"name":"Ana Maria","email":"ana@x.io"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ana Maria", decode[userBody](t, rec).Name)

	rec = api.do(t, http.MethodPatch, anaPath+"/password", token, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "A senha precisa ser informada", decode[errorEnvelope](t, rec).Error.Details[0].Message)

	rec = api.do(t, http.MethodPatch, anaPath+"/password", token, `{"password":"newpass1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	api.login(t, "ana@x.io", "newpass1")

	rec = api.do(t, http.MethodDelete, "/users/999", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[errorEnvelope](t, rec)
	assert.Equal(t, "USER_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Usuario não encontrado", body.Error.Message)

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", bia.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Usuario Bia deletado com sucesso"}`, rec.Body.String())

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/users/%d", bia.ID), token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/nope", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorEnvelope](t, rec).Error.Code)
}

func TestNewServerLifecycle(t *testing.T) {
	api := newTestAPI(t)
	lc := fxtest.NewLifecycle(t)

	params := api.params
	params.Lc = lc

	srv, err := NewServer(params)
	require.NoError(t, err)
	require.NotNil(t, srv)

	lc.RequireStart()
	lc.RequireStop()
}
