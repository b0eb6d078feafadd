package domain

// Ограничения полей записи
const (
	MaxNotesLength      = 1000
	MaxCustomerIDLength = 64
)
