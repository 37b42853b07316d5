package handler

import (
	"net/http"

	"bookshelf/internal/delivery/api/response"
	"bookshelf/internal/domain/entity"
	"bookshelf/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

func (createUserRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":  "O nome é obrigatório",
		"email.required": "O email precisa ser válido",
		"email.email":    "O email precisa ser válido",
		"password.min":   "A senha precisa ter pelo menos 6 caracteres",
	}
}

type updateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (updateUserRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.min":    "O nome é obrigatório",
		"email.email": "O email precisa ser válido",
	}
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

func (updatePasswordRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"password.required": "A senha precisa ser informada",
	}
}

// UserHandler holds dependencies for user management handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.Create(c.Request().Context(), &usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user.Summary())
}

func (h *UserHandler) FindAll(c echo.Context) error {
	users, err := h.uc.FindAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]entity.UserSummary, 0, len(users))
	for _, user := range users {
		out = append(out, user.Summary())
	}

	return response.Success(c, http.StatusOK, out)
}

func (h *UserHandler) FindOne(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.FindOne(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Summary())
}

// Update changes name and email. The password is only changed through UpdatePassword.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.Update(c.Request().Context(), id, &usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Summary())
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.UpdatePassword(c.Request().Context(), id, req.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Summary())
}

func (h *UserHandler) Remove(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	out, err := h.uc.Remove(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMessageResponse(out))
}
