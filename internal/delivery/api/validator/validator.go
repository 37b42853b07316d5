// Package validator adapts go-playground/validator to echo and maps failures to localized field errors.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "bookshelf/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// MessageProvider is implemented by request bodies that carry their own messages.
// Keys are "<json field>.<tag>", for example "email.required".
type MessageProvider interface {
	ValidationMessages() map[string]string
}

// fallbackMessages are used when a request does not define a message for a rule.
var fallbackMessages = map[string]string{
	"required": "O campo %s é obrigatório",
	"email":    "O campo %s precisa ser um email válido",
	"min":      "O campo %s está abaixo do tamanho mínimo",
	"max":      "O campo %s excede o tamanho máximo",
	"gte":      "O campo %s está abaixo do valor mínimo",
	"lte":      "O campo %s excede o valor máximo",
}

// Validator implements echo.Validator.
type Validator struct {
	validate *playground.Validate
}

// New builds a validator that reports fields by their json names.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate returns a VALIDATION_FAILED error listing every invalid field in declaration order.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs playground.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "validate request")
	}

	var messages map[string]string
	if provider, ok := i.(MessageProvider); ok {
		messages = provider.ValidationMessages()
	}

	fields := make([]domainerrors.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fieldErr.Field(),
			Message: messageFor(messages, fieldErr),
		})
	}

	return domainerrors.NewValidationError(fields)
}

func messageFor(messages map[string]string, fieldErr playground.FieldError) string {
	if msg, ok := messages[fieldErr.Field()+"."+fieldErr.Tag()]; ok {
		return msg
	}
	if format, ok := fallbackMessages[fieldErr.Tag()]; ok {
		return fmt.Sprintf(format, fieldErr.Field())
	}

	return fmt.Sprintf("O campo %s é inválido", fieldErr.Field())
}
