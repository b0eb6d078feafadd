package delete_customer_appointments

import "context"

type AppointmentService interface {
	DeleteAllForCustomer(ctx context.Context, customerID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
