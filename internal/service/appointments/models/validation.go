package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrValidation базовая ошибка валидации запроса, оборачивается в *ValidationError
var ErrValidation = errors.New("validation failed")

// FieldError нарушение правила для одного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError все нарушения, найденные в запросе
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// fieldMessages сообщения об ошибках по полю и тегу
var fieldMessages = map[string]map[string]string{
	"title": {
		"not_blank": "Title cannot be blank",
	},
	"category": {
		"not_blank": "Category cannot be blank",
	},
	"startDate": {
		"required":     "Start date cannot be null",
		"iso_datetime": "Start date must be an ISO-8601 date-time",
	},
	"customerId": {
		"not_blank": "Customer ID cannot be blank",
		"max":       fmt.Sprintf("Customer ID must be at most %d characters", domain.MaxCustomerIDLength),
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "iso_datetime", func(fl validator.FieldLevel) bool {
		_, err := types.ParseDateTime(fl.Field().String())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("models: register validation %q: %v", tag, err))
	}
}

// Validate проверяет запрос и возвращает данные для сервиса.
// Все нарушения собираются в один *ValidationError.
func (r *AppointmentRequest) Validate() (*AppointmentInput, error) {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, toValidationError(fieldErrs)
	}

	startDate, err := types.ParseDateTime(*r.StartDate)
	if err != nil {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:   "startDate",
			Message: fieldMessages["startDate"]["iso_datetime"],
		}}}
	}

	return &AppointmentInput{
		Title:      r.Title,
		Notes:      cloneString(r.Notes),
		Category:   r.Category,
		StartDate:  startDate,
		Done:       r.Done,
		CustomerID: r.CustomerID,
	}, nil
}

func toValidationError(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make([]FieldError, 0, len(errs))}

	for _, fe := range errs {
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed on %q rule", fe.Tag())
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
	}

	return out
}
