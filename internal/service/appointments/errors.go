package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена (в том числе у указанного клиента)
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidInput возвращается, когда хранилище отклонило данные записи
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
