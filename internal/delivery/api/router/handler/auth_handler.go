package handler

import (
	"net/http"

	"bookshelf/internal/delivery/api/response"
	"bookshelf/internal/domain/entity"
	"bookshelf/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type registerRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"min=6"`
}

func (registerRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":        "O nome é obrigatório",
		"email.required":       "O email é obrigatório",
		"password.min":         "A senha precisa ter pelo menos 6 caracteres",
		"confirm_password.min": "A senha precisa ter pelo menos 6 caracteres",
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func (loginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.required":    "O email é obrigatório.",
		"password.required": "A senha é obrigatória.",
		"password.min":      "A senha deve ter pelo menos 6 caracteres.",
	}
}

type loginResponse struct {
	Token string             `json:"token"`
	User  entity.UserSummary `json:"user"`
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register creates an account and returns it without credentials.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user.Summary())
}

// Login exchanges credentials for an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		Token: out.Token,
		User:  out.User.Summary(),
	})
}
