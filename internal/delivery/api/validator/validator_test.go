package validator

import (
	"testing"

	domainerrors "bookshelf/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupBody struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
	Nickname string `json:"nickname,omitempty" validate:"omitempty,max=3"`
}

func (signupBody) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required": "O nome é obrigatório",
		"password.min":  "A senha precisa ter pelo menos 6 caracteres",
	}
}

type plainBody struct {
	Title string `json:"title" validate:"required"`
}

func fieldErrors(t *testing.T, err error) []domainerrors.FieldError {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	fields, ok := appErr.Details().([]domainerrors.FieldError)
	require.True(t, ok)

	return fields
}

func TestValidate(t *testing.T) {
	v := New()

	t.Run("valid body", func(t *testing.T) {
		err := v.Validate(&signupBody{Name: "Ana", Email: "ana@x.io", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("custom messages in field order", func(t *testing.T) {
		err := v.Validate(&signupBody{Email: "ana@x.io", Password: "123"})

		fields := fieldErrors(t, err)
		assert.Equal(t, []domainerrors.FieldError{
			{Field: "name", Message: "O nome é obrigatório"},
			{Field: "password", Message: "A senha precisa ter pelo menos 6 caracteres"},
		}, fields)
	})

	t.Run("fallback messages use the json name", func(t *testing.T) {
		err := v.Validate(&signupBody{Name: "Ana", Email: "not-an-email", Password: "secret1", Nickname: "toolong"})

		fields := fieldErrors(t, err)
		require.Len(t, fields, 2)
		assert.Equal(t, "email", fields[0].Field)
		assert.Equal(t, "O campo email precisa ser um email válido", fields[0].Message)
		assert.Equal(t, "nickname", fields[1].Field)
		assert.Equal(t, "O campo nickname excede o tamanho máximo", fields[1].Message)
	})

	t.Run("body without messages", func(t *testing.T) {
		fields := fieldErrors(t, v.Validate(&plainBody{}))
		assert.Equal(t, []domainerrors.FieldError{
			{Field: "title", Message: "O campo title é obrigatório"},
		}, fields)
	})

	t.Run("non struct input", func(t *testing.T) {
		err := v.Validate("nope")
		require.Error(t, err)

		var appErr domainerrors.AppError
		assert.False(t, errors.As(err, &appErr))
	})
}
