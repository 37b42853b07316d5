// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"bookshelf/internal/delivery/api/response"
	domainerrors "bookshelf/internal/domain/errors"
	"bookshelf/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type messageResponse struct {
	Message string `json:"message"`
}

func toMessageResponse(out *usecase.MessageOutput) messageResponse {
	return messageResponse{Message: out.Message}
}

// bindAndValidate decodes the body into req and runs the registered validator on it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrInvalidID.WrapMessage("parse path parameter " + name)
	}

	return uint(id), nil
}

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
