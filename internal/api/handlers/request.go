package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации запроса"
	msgBodyTooLarge       = "тело запроса превышает допустимый размер"
)

// ErrInvalidBody тело запроса не разбирается как JSON записи
var ErrInvalidBody = errors.New("invalid request body")

// DecodeAppointment читает и проверяет тело запроса записи.
// Возвращает ErrInvalidBody либо *models.ValidationError со всеми нарушениями.
func DecodeAppointment(r *http.Request) (*models.AppointmentInput, error) {
	var req models.AppointmentRequest
	if err := DecodeJSON(r, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	return req.Validate()
}

// RespondRequestError отвечает на ошибку DecodeAppointment:
// 413 при превышении лимита тела, иначе 400
func RespondRequestError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		RespondValidationError(w, msgValidationFailed, verr)
		return
	}
	RespondBadRequest(w, msgInvalidRequestBody)
}
