package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// AppointmentRequest тело запроса на создание и обновление записи.
// Проверяется методом Validate до вызова сервиса.
type AppointmentRequest struct {
	Title      string  `json:"title" validate:"not_blank"`
	Notes      *string `json:"notes"`
	Category   string  `json:"category" validate:"not_blank"`
	StartDate  *string `json:"startDate" validate:"required,iso_datetime"`
	Done       *bool   `json:"done"`
	CustomerID string  `json:"customerId" validate:"not_blank,max=64"`
}

// AppointmentInput проверенные данные записи, с которыми работает сервис
type AppointmentInput struct {
	Title      string
	Notes      *string
	Category   string
	StartDate  types.DateTime
	Done       *bool
	CustomerID string
}

// NewAppointment строит новую запись без ID. Если done не передан, запись не выполнена.
func (in *AppointmentInput) NewAppointment() domain.Appointment {
	return domain.Appointment{
		Title:      in.Title,
		Notes:      cloneString(in.Notes),
		Category:   in.Category,
		StartDate:  in.StartDate,
		Done:       ptr.Deref(in.Done, false),
		CustomerID: in.CustomerID,
	}
}

// ApplyTo возвращает копию existing, в которой перезаписаны все поля кроме ID
func (in *AppointmentInput) ApplyTo(existing domain.Appointment) domain.Appointment {
	updated := in.NewAppointment()
	updated.ID = existing.ID
	return updated
}

// ApplyKeepingCustomer как ApplyTo, но клиент записи остаётся прежним
func (in *AppointmentInput) ApplyKeepingCustomer(existing domain.Appointment) domain.Appointment {
	updated := in.ApplyTo(existing)
	updated.CustomerID = existing.CustomerID
	return updated
}

// Response модели

// AppointmentResponse запись в ответе API
type AppointmentResponse struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	Notes      *string        `json:"notes"`
	Category   string         `json:"category"`
	StartDate  types.DateTime `json:"startDate"`
	Done       bool           `json:"done"`
	CustomerID string         `json:"customerId"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:         a.ID,
		Title:      a.Title,
		Notes:      cloneString(a.Notes),
		Category:   a.Category,
		StartDate:  a.StartDate,
		Done:       a.Done,
		CustomerID: a.CustomerID,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO.
// Для пустого входа возвращает пустой (не nil) список, чтобы в JSON был [].
func FromDomainAppointmentList(appointments []*domain.Appointment) []AppointmentResponse {
	resp := make([]AppointmentResponse, 0, len(appointments))

	for _, appointment := range appointments {
		if a := FromDomainAppointment(appointment); a != nil {
			resp = append(resp, *a)
		}
	}

	return resp
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr.Of(*s)
}
