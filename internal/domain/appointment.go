package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Appointment запись о приёме клиента
type Appointment struct {
	ID         int64 // назначается хранилищем при создании, не меняется
	Title      string
	Notes      *string // до MaxNotesLength символов, ограничение обеспечивает схема БД
	Category   string
	StartDate  types.DateTime
	Done       bool
	CustomerID string
}

// Clone возвращает независимую копию записи
func (a Appointment) Clone() Appointment {
	if a.Notes != nil {
		notes := *a.Notes
		a.Notes = &notes
	}
	return a
}

// BelongsTo проверяет, что запись принадлежит клиенту
func (a *Appointment) BelongsTo(customerID string) bool {
	return a.CustomerID == customerID
}
