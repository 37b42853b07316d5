package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "bookshelf/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code    string                    `json:"code"`
		Message string                    `json:"message"`
		Details []domainerrors.FieldError `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func TestHandleHTTPError(t *testing.T) {
	validation := domainerrors.NewValidationError([]domainerrors.FieldError{
		{Field: "title", Message: "O título é obrigatório"},
	})

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails int
	}{
		{
			name:        "wrapped domain error",
			err:         errors.Wrap(domainerrors.ErrEmailAlreadyExists, "register"),
			wantStatus:  http.StatusConflict,
			wantCode:    "EMAIL_ALREADY_EXISTS",
			wantMessage: "Email já cadastrado",
		},
		{
			name:        "validation error keeps details",
			err:         errors.WithStack(validation),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantMessage: "Dados de entrada inválidos",
			wantDetails: 1,
		},
		{
			name:        "database error hides details",
			err:         domainerrors.NewDatabaseExecuteError(errors.New("conn refused"), "insert user"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "DATABASE_EXECUTE_FAILED",
			wantMessage: "Falha ao executar operação no banco de dados",
		},
		{
			name:        "echo not found",
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Recurso não encontrado",
		},
		{
			name:        "echo teapot uses status text",
			err:         echo.NewHTTPError(http.StatusTeapot),
			wantStatus:  http.StatusTeapot,
			wantCode:    "HTTP_ERROR",
			wantMessage: http.StatusText(http.StatusTeapot),
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Erro interno do servidor",
		},
	}

	handler := NewErrorMiddleware(slog.New(slog.DiscardHandler))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
			assert.Len(t, body.Error.Details, tt.wantDetails)
			assert.NotEmpty(t, body.Meta.RequestID)
		})
	}
}

func TestHandleHTTPErrorSkipsCommittedResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.NoContent(http.StatusAccepted))

	NewErrorMiddleware(slog.New(slog.DiscardHandler)).HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
